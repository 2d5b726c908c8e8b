package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/domain"
)

// chatRequest is the body for an assistant exchange. Conversation carries the
// prior turns, oldest first.
type chatRequest struct {
	Message      string              `json:"message"`
	Conversation []assistant.Message `json:"conversation"`
}

// handleAssistantChat handles POST /assistant/chat. Upstream failures are
// soft: the reply still arrives with HTTP 200 and success=false. Only a
// second in-flight request is rejected outright.
func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		requestError(w, "message must not be empty")
		return
	}

	reply, err := s.chat.Chat(r.Context(), req.Message, req.Conversation)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantBusy) {
			writeError(w, http.StatusTooManyRequests, "assistant_busy", "a reply is already being generated")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
