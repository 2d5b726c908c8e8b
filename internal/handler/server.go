// Package handler implements the HTTP handlers for the Wanderlust API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, item.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paolobenve/wanderlust/internal/assistant"
	"github.com/paolobenve/wanderlust/internal/domain"
	"github.com/paolobenve/wanderlust/internal/weather"
	"github.com/paolobenve/wanderlust/spec"
)

// ItineraryServicer defines the trip/day/item operations the handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the service layer.
type ItineraryServicer interface {
	ListTrips(ctx context.Context) []domain.Trip
	GetTrip(ctx context.Context, tripID string) (domain.Trip, error)
	CreateTrip(ctx context.Context, draft domain.TripDraft) (domain.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, patch domain.TripPatch) (domain.Trip, error)
	SetCurrentTrip(ctx context.Context, tripID string) error
	CurrentTrip(ctx context.Context) (domain.Trip, bool)
	GetDay(ctx context.Context, dayID string) (domain.TravelDay, error)
	AddItem(ctx context.Context, dayID string, draft domain.ItemDraft) (domain.ItineraryItem, error)
	AddItemForDate(ctx context.Context, tripID, date string, draft domain.ItemDraft) (domain.ItineraryItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	UpdateItem(ctx context.Context, dayID, itemID string, patch domain.ItemPatch) (domain.ItineraryItem, error)
	ReorderItems(ctx context.Context, dayID string, newOrder []domain.ItineraryItem) error
	MoveItem(ctx context.Context, dayID, sourceID, targetID string) error
	DaySummary(ctx context.Context, dayID string) (domain.DaySummary, error)
	ImportTrip(ctx context.Context, content []byte, filename string) (domain.Trip, error)
	ExportTrip(ctx context.Context, tripID string) (filename string, data []byte, err error)
}

// ExpenseServicer defines the expense-tracker operations.
type ExpenseServicer interface {
	AddExpense(ctx context.Context, tripID string, draft domain.ExpenseDraft) (domain.Expense, error)
	ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error)
	Summary(ctx context.Context, tripID string) (domain.ExpenseSummary, error)
}

// AssistantServicer defines the chat proxy operation.
type AssistantServicer interface {
	Chat(ctx context.Context, message string, conversation []assistant.Message) (assistant.Reply, error)
}

// Forecaster defines the weather lookup.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lng float64) (weather.Forecast, error)
}

// Server holds all handler dependencies. Construct it with NewServer and
// mount Routes() on the application router.
type Server struct {
	trips    ItineraryServicer
	expenses ExpenseServicer
	chat     AssistantServicer
	weather  Forecaster
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips ItineraryServicer, expenses ExpenseServicer, chat AssistantServicer, forecaster Forecaster) *Server {
	return &Server{trips: trips, expenses: expenses, chat: chat, weather: forecaster}
}

// Routes returns the full API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.handleListTrips)
		r.Post("/", s.handleCreateTrip)
		r.Post("/import", s.handleImportTrip)
		r.Get("/current", s.handleCurrentTrip)
		r.Post("/current/{tripID}", s.handleSetCurrentTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Patch("/", s.handleUpdateTrip)
			r.Get("/export", s.handleExportTrip)
			r.Post("/days/{date}/items", s.handleAddItemForDate)
			r.Get("/expenses", s.handleListExpenses)
			r.Post("/expenses", s.handleAddExpense)
		})
	})

	r.Route("/days/{dayID}", func(r chi.Router) {
		r.Get("/", s.handleGetDay)
		r.Get("/summary", s.handleDaySummary)
		r.Post("/items", s.handleAddItem)
		r.Post("/places/{placeID}", s.handleAddFromDiscovery)
		r.Patch("/items/{itemID}", s.handleUpdateItem)
		r.Put("/items/order", s.handleReorderItems)
		r.Post("/items/move", s.handleMoveItem)
	})
	r.Delete("/items/{itemID}", s.handleRemoveItem)

	r.Get("/discover", s.handleDiscover)
	r.Get("/discover/categories", s.handleDiscoverCategories)
	r.Get("/weather", s.handleWeather)
	r.Post("/assistant/chat", s.handleAssistantChat)

	return r
}

// handleHealth handles GET /healthz. It returns HTTP 200 with
// {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOpenAPI serves the embedded API specification.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(spec.OpenAPI)
}
