package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// errorResponse is the uniform error body: {"error":{"code","message"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v with the given status. Encoding failures are logged,
// not surfaced — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError emits the uniform error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// notFound returns 404 with the supplied human-readable message; the handler
// is the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message)
}

// validationError returns 422, extracting the human-readable part from a
// wrapped domain.ErrValidation.
func validationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
}

// requestError returns 422 for a request rejected before reaching the
// service layer (missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// saveFailed returns 500 for a persistence failure. The mutation is kept in
// memory, so the message tells the user the change may not survive a restart.
func saveFailed(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "save_failed", "failed to save changes")
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "validation error: name is required" → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
