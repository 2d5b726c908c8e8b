package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// createTripRequest is the POST /trips body. Dates use the OpenAPI date
// type so malformed values are rejected at decode time; the domain itself
// carries them as plain ISO strings.
type createTripRequest struct {
	Name         string              `json:"name"`
	StartDate    *openapi_types.Date `json:"startDate"`
	EndDate      *openapi_types.Date `json:"endDate"`
	Participants int                 `json:"participants"`
	Status       domain.TripStatus   `json:"status"`
}

// updateTripRequest is the PATCH /trips/{tripID} body; absent fields are
// left unchanged.
type updateTripRequest struct {
	Name         *string             `json:"name"`
	StartDate    *openapi_types.Date `json:"startDate"`
	EndDate      *openapi_types.Date `json:"endDate"`
	Participants *int                `json:"participants"`
	Status       *domain.TripStatus  `json:"status"`
}

// handleListTrips handles GET /trips. Order is storage order.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.ListTrips(r.Context()))
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	draft := domain.TripDraft{
		Name:         req.Name,
		StartDate:    dateString(req.StartDate),
		EndDate:      dateString(req.EndDate),
		Participants: req.Participants,
		Status:       req.Status,
	}

	created, err := s.trips.CreateTrip(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			validationError(w, err)
		case errors.Is(err, domain.ErrStoreWrite):
			saveFailed(w)
		default:
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetTrip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		notFound(w, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleUpdateTrip handles PATCH /trips/{tripID}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	patch := domain.TripPatch{
		Name:         req.Name,
		Participants: req.Participants,
		Status:       req.Status,
	}
	if req.StartDate != nil {
		d := dateString(req.StartDate)
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d := dateString(req.EndDate)
		patch.EndDate = &d
	}

	updated, err := s.trips.UpdateTrip(r.Context(), chi.URLParam(r, "tripID"), patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "trip not found")
		case errors.Is(err, domain.ErrValidation):
			validationError(w, err)
		case errors.Is(err, domain.ErrStoreWrite):
			saveFailed(w)
		default:
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleSetCurrentTrip handles POST /trips/current/{tripID}.
func (s *Server) handleSetCurrentTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.SetCurrentTrip(r.Context(), chi.URLParam(r, "tripID")); err != nil {
		notFound(w, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentTrip handles GET /trips/current.
func (s *Server) handleCurrentTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.trips.CurrentTrip(r.Context())
	if !ok {
		notFound(w, "no trip selected")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleGetDay handles GET /days/{dayID}.
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	day, err := s.trips.GetDay(r.Context(), chi.URLParam(r, "dayID"))
	if err != nil {
		notFound(w, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// handleDaySummary handles GET /days/{dayID}/summary.
func (s *Server) handleDaySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.trips.DaySummary(r.Context(), chi.URLParam(r, "dayID"))
	if err != nil {
		notFound(w, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// dateString formats an optional OpenAPI date as an ISO date string,
// returning "" when nil so the service's required-field validation fires.
func dateString(d *openapi_types.Date) string {
	if d == nil {
		return ""
	}
	return d.Time.Format("2006-01-02")
}
