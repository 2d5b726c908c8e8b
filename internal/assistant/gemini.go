// Package assistant proxies chat messages to an external language model.
// The core treats the model as an opaque black box: one request, one reply,
// no retry. Upstream failure is always soft — the user still gets text.
package assistant

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// systemPrompt specializes the model as the app's travel assistant.
const systemPrompt = `Sei un assistente AI specializzato in viaggi e itinerari. Il tuo nome è TravelBot e lavori per un'app di pianificazione viaggi chiamata Wanderlust.

COMPETENZE:
- Pianificazione itinerari dettagliati
- Consigli su destinazioni, attrazioni, ristoranti
- Informazioni su trasporti e logistica
- Suggerimenti su budget e costi
- Consigli stagionali e meteo

STILE DI RISPOSTA:
- Entusiasta ma professionale
- Risposte dettagliate ma concise
- Suggerimenti pratici e actionable
- Sempre in italiano

Rispondi sempre in modo utile e cerca di essere specifico nei tuoi consigli.`

// Message is one turn of the conversation history. Role is "user" or
// "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces one assistant reply for a message with prior
// conversation context. Implementations make exactly one attempt.
type Generator interface {
	Generate(ctx context.Context, message string, conversation []Message) (string, error)
}

// GeminiClient is the Generator backed by the Google Gemini API.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient returns a client using the given API key and the default
// model.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, model: "gemini-2.5-flash-lite"}
}

// Generate sends the conversation plus the new message and returns the
// reply text. The context governs cancellation; there is no retry.
func (c *GeminiClient) Generate(ctx context.Context, message string, conversation []Message) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("assistant.GeminiClient.Generate: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SetMaxOutputTokens(500)
	model.SetTemperature(0.7)

	chat := model.StartChat()
	for _, m := range conversation {
		// Gemini's history roles are "user" and "model".
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	res, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("assistant.GeminiClient.Generate: %w", err)
	}

	var text string
	if len(res.Candidates) > 0 {
		for _, part := range res.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text, nil
}
