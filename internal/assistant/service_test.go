package assistant_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/domain"
)

// mockGenerator is a hand-written test double for assistant.Generator.
type mockGenerator struct {
	generate func(ctx context.Context, message string, conversation []assistant.Message) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, message string, conversation []assistant.Message) (string, error) {
	return m.generate(ctx, message, conversation)
}

var _ assistant.Generator = (*mockGenerator)(nil)

func TestService_Chat_OK(t *testing.T) {
	svc := assistant.NewService(&mockGenerator{
		generate: func(_ context.Context, message string, _ []assistant.Message) (string, error) {
			assert.Equal(t, "Dove vado a maggio?", message)
			return "Ti consiglio la Toscana!", nil
		},
	})

	reply, err := svc.Chat(context.Background(), "Dove vado a maggio?", nil)

	require.NoError(t, err)
	assert.True(t, reply.Success)
	assert.Equal(t, "Ti consiglio la Toscana!", reply.Response)
	assert.Empty(t, reply.Error)
}

func TestService_Chat_PassesConversationHistory(t *testing.T) {
	var gotHistory []assistant.Message
	svc := assistant.NewService(&mockGenerator{
		generate: func(_ context.Context, _ string, conversation []assistant.Message) (string, error) {
			gotHistory = conversation
			return "ok", nil
		},
	})

	history := []assistant.Message{
		{Role: "user", Content: "Ciao"},
		{Role: "assistant", Content: "Ciao! Come posso aiutarti?"},
	}
	_, err := svc.Chat(context.Background(), "Consigli per Roma?", history)

	require.NoError(t, err)
	assert.Equal(t, history, gotHistory)
}

func TestService_Chat_UpstreamFailureIsSoft(t *testing.T) {
	svc := assistant.NewService(&mockGenerator{
		generate: func(_ context.Context, _ string, _ []assistant.Message) (string, error) {
			return "", errors.New("quota exceeded")
		},
	})

	reply, err := svc.Chat(context.Background(), "Ciao", nil)

	// Upstream failure is not an error: the reply degrades to a fallback.
	require.NoError(t, err)
	assert.False(t, reply.Success)
	assert.NotEmpty(t, reply.Response)
	assert.Equal(t, "quota exceeded", reply.Error)
}

func TestService_Chat_NilGenerator(t *testing.T) {
	svc := assistant.NewService(nil)

	reply, err := svc.Chat(context.Background(), "Ciao", nil)

	require.NoError(t, err)
	assert.False(t, reply.Success)
	assert.NotEmpty(t, reply.Response)
	assert.Equal(t, "assistant not configured", reply.Error)
}

func TestService_Chat_SecondRequestRejectedWhileBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	svc := assistant.NewService(&mockGenerator{
		generate: func(_ context.Context, _ string, _ []assistant.Message) (string, error) {
			once.Do(func() { close(started) })
			<-release // closed after the busy check, so later calls pass through
			return "done", nil
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reply, err := svc.Chat(context.Background(), "slow question", nil)
		assert.NoError(t, err)
		assert.True(t, reply.Success)
	}()

	// Wait until the first request holds the slot, then try a second one.
	<-started
	_, err := svc.Chat(context.Background(), "impatient question", nil)
	assert.ErrorIs(t, err, domain.ErrAssistantBusy)

	close(release)
	wg.Wait()

	// The slot is released; the next request goes through.
	reply, err := svc.Chat(context.Background(), "third question", nil)
	require.NoError(t, err)
	assert.True(t, reply.Success)
}
