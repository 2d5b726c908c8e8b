package assistant

import (
	"context"
	"math/rand/v2"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// Reply is the proxy's response envelope. Success false is a soft failure:
// Response still carries displayable text (a fallback) and Error names the
// underlying problem. Callers display the text either way.
type Reply struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// fallbackReplies are shown when the upstream model fails; one is picked at
// random.
var fallbackReplies = []string{
	"Mi dispiace, al momento sto avendo difficoltà tecniche. Tuttavia posso comunque aiutarti! Che tipo di viaggio stai pianificando? 🗺️",
	"C'è un piccolo problema con la connessione, ma sono qui per aiutarti! Dimmi la tua destinazione e ti darò alcuni consigli utili! ✈️",
	"Al momento non riesco ad accedere a tutte le mie funzionalità, ma posso comunque fornirti consigli di base. Cosa vorresti sapere sul tuo viaggio? 🧳",
}

// unconfiguredReply is the locally generated fallback used when no model is
// configured at all, distinct from the soft-failure fallbacks above.
const unconfiguredReply = "L'assistente di viaggio non è al momento disponibile. Riprova più tardi! 🧳"

// Service gates access to the Generator: at most one request is in flight
// at a time. A message arriving while another is pending is rejected
// immediately with domain.ErrAssistantBusy rather than queued, so a stale
// question is never answered minutes later.
type Service struct {
	gen      Generator
	inflight chan struct{}
}

// NewService wraps gen. A nil gen is allowed: every chat then resolves to
// the locally generated unavailable reply.
func NewService(gen Generator) *Service {
	s := &Service{gen: gen, inflight: make(chan struct{}, 1)}
	s.inflight <- struct{}{}
	return s
}

// Chat forwards one message with its conversation history and returns the
// reply. Upstream failure never returns an error — it degrades to a fallback
// Reply with Success false. The only error condition is a concurrent
// request already in flight.
func (s *Service) Chat(ctx context.Context, message string, conversation []Message) (Reply, error) {
	select {
	case <-s.inflight:
		defer func() { s.inflight <- struct{}{} }()
	default:
		return Reply{}, domain.ErrAssistantBusy
	}

	if s.gen == nil {
		return Reply{
			Response: unconfiguredReply,
			Success:  false,
			Error:    "assistant not configured",
		}, nil
	}

	text, err := s.gen.Generate(ctx, message, conversation)
	if err != nil {
		return Reply{
			Response: fallbackReplies[rand.IntN(len(fallbackReplies))],
			Success:  false,
			Error:    err.Error(),
		}, nil
	}
	return Reply{Response: text, Success: true}, nil
}
