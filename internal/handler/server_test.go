package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/domain"
	"github.com/paolobenve/wanderlust/internal/handler"
	"github.com/paolobenve/wanderlust/internal/weather"
)

// ---- mocks -----------------------------------------------------------------

// mockItineraryServicer is a test double for handler.ItineraryServicer.
// Set only the method fields your test needs.
type mockItineraryServicer struct {
	listTrips      func(ctx context.Context) []domain.Trip
	getTrip        func(ctx context.Context, tripID string) (domain.Trip, error)
	createTrip     func(ctx context.Context, draft domain.TripDraft) (domain.Trip, error)
	updateTrip     func(ctx context.Context, tripID string, patch domain.TripPatch) (domain.Trip, error)
	setCurrentTrip func(ctx context.Context, tripID string) error
	currentTrip    func(ctx context.Context) (domain.Trip, bool)
	getDay         func(ctx context.Context, dayID string) (domain.TravelDay, error)
	addItem        func(ctx context.Context, dayID string, draft domain.ItemDraft) (domain.ItineraryItem, error)
	addItemForDate func(ctx context.Context, tripID, date string, draft domain.ItemDraft) (domain.ItineraryItem, error)
	removeItem     func(ctx context.Context, itemID string) error
	updateItem     func(ctx context.Context, dayID, itemID string, patch domain.ItemPatch) (domain.ItineraryItem, error)
	reorderItems   func(ctx context.Context, dayID string, newOrder []domain.ItineraryItem) error
	moveItem       func(ctx context.Context, dayID, sourceID, targetID string) error
	daySummary     func(ctx context.Context, dayID string) (domain.DaySummary, error)
	importTrip     func(ctx context.Context, content []byte, filename string) (domain.Trip, error)
	exportTrip     func(ctx context.Context, tripID string) (string, []byte, error)
}

func (m *mockItineraryServicer) ListTrips(ctx context.Context) []domain.Trip {
	return m.listTrips(ctx)
}
func (m *mockItineraryServicer) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	return m.getTrip(ctx, tripID)
}
func (m *mockItineraryServicer) CreateTrip(ctx context.Context, draft domain.TripDraft) (domain.Trip, error) {
	return m.createTrip(ctx, draft)
}
func (m *mockItineraryServicer) UpdateTrip(ctx context.Context, tripID string, patch domain.TripPatch) (domain.Trip, error) {
	return m.updateTrip(ctx, tripID, patch)
}
func (m *mockItineraryServicer) SetCurrentTrip(ctx context.Context, tripID string) error {
	return m.setCurrentTrip(ctx, tripID)
}
func (m *mockItineraryServicer) CurrentTrip(ctx context.Context) (domain.Trip, bool) {
	return m.currentTrip(ctx)
}
func (m *mockItineraryServicer) GetDay(ctx context.Context, dayID string) (domain.TravelDay, error) {
	return m.getDay(ctx, dayID)
}
func (m *mockItineraryServicer) AddItem(ctx context.Context, dayID string, draft domain.ItemDraft) (domain.ItineraryItem, error) {
	return m.addItem(ctx, dayID, draft)
}
func (m *mockItineraryServicer) AddItemForDate(ctx context.Context, tripID, date string, draft domain.ItemDraft) (domain.ItineraryItem, error) {
	return m.addItemForDate(ctx, tripID, date, draft)
}
func (m *mockItineraryServicer) RemoveItem(ctx context.Context, itemID string) error {
	return m.removeItem(ctx, itemID)
}
func (m *mockItineraryServicer) UpdateItem(ctx context.Context, dayID, itemID string, patch domain.ItemPatch) (domain.ItineraryItem, error) {
	return m.updateItem(ctx, dayID, itemID, patch)
}
func (m *mockItineraryServicer) ReorderItems(ctx context.Context, dayID string, newOrder []domain.ItineraryItem) error {
	return m.reorderItems(ctx, dayID, newOrder)
}
func (m *mockItineraryServicer) MoveItem(ctx context.Context, dayID, sourceID, targetID string) error {
	return m.moveItem(ctx, dayID, sourceID, targetID)
}
func (m *mockItineraryServicer) DaySummary(ctx context.Context, dayID string) (domain.DaySummary, error) {
	return m.daySummary(ctx, dayID)
}
func (m *mockItineraryServicer) ImportTrip(ctx context.Context, content []byte, filename string) (domain.Trip, error) {
	return m.importTrip(ctx, content, filename)
}
func (m *mockItineraryServicer) ExportTrip(ctx context.Context, tripID string) (string, []byte, error) {
	return m.exportTrip(ctx, tripID)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// mockExpenseServicer is a test double for handler.ExpenseServicer.
type mockExpenseServicer struct {
	addExpense   func(ctx context.Context, tripID string, draft domain.ExpenseDraft) (domain.Expense, error)
	listExpenses func(ctx context.Context, tripID string) ([]domain.Expense, error)
	summary      func(ctx context.Context, tripID string) (domain.ExpenseSummary, error)
}

func (m *mockExpenseServicer) AddExpense(ctx context.Context, tripID string, draft domain.ExpenseDraft) (domain.Expense, error) {
	return m.addExpense(ctx, tripID, draft)
}
func (m *mockExpenseServicer) ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error) {
	return m.listExpenses(ctx, tripID)
}
func (m *mockExpenseServicer) Summary(ctx context.Context, tripID string) (domain.ExpenseSummary, error) {
	return m.summary(ctx, tripID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

// mockAssistantServicer is a test double for handler.AssistantServicer.
type mockAssistantServicer struct {
	chat func(ctx context.Context, message string, conversation []assistant.Message) (assistant.Reply, error)
}

func (m *mockAssistantServicer) Chat(ctx context.Context, message string, conversation []assistant.Message) (assistant.Reply, error) {
	return m.chat(ctx, message, conversation)
}

var _ handler.AssistantServicer = (*mockAssistantServicer)(nil)

// mockForecaster is a test double for handler.Forecaster.
type mockForecaster struct {
	forecast func(ctx context.Context, lat, lng float64) (weather.Forecast, error)
}

func (m *mockForecaster) Forecast(ctx context.Context, lat, lng float64) (weather.Forecast, error) {
	return m.forecast(ctx, lat, lng)
}

var _ handler.Forecaster = (*mockForecaster)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler mounts a Server with the given mocks on the API router,
// mirroring how main.go wires it in production. Nil mocks are fine for
// routes the test never hits.
func newHTTPHandler(trips handler.ItineraryServicer, expenses handler.ExpenseServicer, chat handler.AssistantServicer, forecaster handler.Forecaster) http.Handler {
	return handler.NewServer(trips, expenses, chat, forecaster).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// doRequest runs req through a fresh router and returns the recorder.
func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeErrorCode extracts the code from the uniform error body.
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:           "trip-1",
		Name:         "Toscana 2026",
		StartDate:    "2026-05-01",
		EndDate:      "2026-05-07",
		Participants: 2,
		Status:       domain.StatusPlanning,
		Days: []domain.TravelDay{{
			ID:    "day-1",
			Date:  "2026-05-01",
			Items: []domain.ItineraryItem{},
		}},
	}
}

func itemFixture(id, name string) domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:       id,
		Name:     name,
		Time:     "9:00",
		Duration: "2 ore",
		Type:     "Attrazione",
		Rating:   4.0,
		Image:    "🎯",
	}
}

// ---- GET /healthz ----------------------------------------------------------

func TestHealth_200(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

// ---- GET /openapi.yaml -----------------------------------------------------

func TestOpenAPI_200(t *testing.T) {
	h := newHTTPHandler(nil, nil, nil, nil)

	rec := doRequest(h, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi:")
}
