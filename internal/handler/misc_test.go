package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/discovery"
	"github.com/paolobenve/wanderlust/internal/domain"
	"github.com/paolobenve/wanderlust/internal/weather"
)

// ---- GET /discover -----------------------------------------------------------

func TestDiscover_200_FiltersByQuery(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/discover?q=pisa", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var places []discovery.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Torre di Pisa", places[0].Name)
}

func TestDiscover_200_NoMatchIsEmptyArray(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/discover?q=atlantide", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// An empty result is [] on the wire, never null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDiscoverCategories_200(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/discover/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var cats []discovery.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Equal(t, discovery.Categories, cats)
}

// ---- GET /weather ------------------------------------------------------------

func TestWeather_200(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, &mockForecaster{
		forecast: func(_ context.Context, lat, lng float64) (weather.Forecast, error) {
			assert.Equal(t, 43.7731, lat)
			assert.Equal(t, 11.256, lng)
			return weather.Forecast{Temperature: 24.5, Condition: "Soleggiato"}, nil
		},
	})

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/weather?lat=43.7731&lng=11.256", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var f weather.Forecast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "Soleggiato", f.Condition)
}

func TestWeather_422_MissingCoordinates(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, &mockForecaster{})

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/weather?lat=43.77", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWeather_502_UpstreamDown(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, &mockForecaster{
		forecast: func(_ context.Context, _, _ float64) (weather.Forecast, error) {
			return weather.Forecast{}, errors.New("connection refused")
		},
	})

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/weather?lat=43.77&lng=11.25", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "weather_unavailable", decodeErrorCode(t, rec))
}

// ---- POST /assistant/chat ------------------------------------------------------

func TestAssistantChat_200(t *testing.T) {
	var gotMessage string
	var gotHistory []assistant.Message
	h := newHTTPHandler(nil, nil, &mockAssistantServicer{
		chat: func(_ context.Context, message string, conversation []assistant.Message) (assistant.Reply, error) {
			gotMessage = message
			gotHistory = conversation
			return assistant.Reply{Response: "Ti consiglio la Toscana!", Success: true}, nil
		},
	}, nil)

	body := jsonBody(t, map[string]any{
		"message": "Dove vado a maggio?",
		"conversation": []map[string]string{
			{"role": "user", "content": "Ciao"},
			{"role": "assistant", "content": "Ciao!"},
		},
	})
	rec := doRequest(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dove vado a maggio?", gotMessage)
	require.Len(t, gotHistory, 2)
	assert.Equal(t, "assistant", gotHistory[1].Role)

	var reply assistant.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Success)
}

func TestAssistantChat_200_SoftFailure(t *testing.T) {
	h := newHTTPHandler(nil, nil, &mockAssistantServicer{
		chat: func(_ context.Context, _ string, _ []assistant.Message) (assistant.Reply, error) {
			return assistant.Reply{Response: "fallback", Success: false, Error: "quota exceeded"}, nil
		},
	}, nil)

	body := jsonBody(t, map[string]any{"message": "Ciao"})
	rec := doRequest(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))

	// Upstream failure still answers 200; the envelope carries success=false.
	require.Equal(t, http.StatusOK, rec.Code)
	var reply assistant.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.False(t, reply.Success)
	assert.Equal(t, "fallback", reply.Response)
}

func TestAssistantChat_429_Busy(t *testing.T) {
	h := newHTTPHandler(nil, nil, &mockAssistantServicer{
		chat: func(_ context.Context, _ string, _ []assistant.Message) (assistant.Reply, error) {
			return assistant.Reply{}, domain.ErrAssistantBusy
		},
	}, nil)

	body := jsonBody(t, map[string]any{"message": "Ciao"})
	rec := doRequest(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "assistant_busy", decodeErrorCode(t, rec))
}

func TestAssistantChat_422_EmptyMessage(t *testing.T) {
	h := newHTTPHandler(nil, nil, &mockAssistantServicer{}, nil)

	body := jsonBody(t, map[string]any{"message": "   "})
	rec := doRequest(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
