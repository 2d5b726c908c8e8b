package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// itemDraftRequest is the body for adding an item to a day.
type itemDraftRequest struct {
	Name          string           `json:"name"`
	Time          string           `json:"time"`
	Duration      string           `json:"duration"`
	Type          string           `json:"type"`
	Rating        float64          `json:"rating"`
	Image         string           `json:"image"`
	Location      *domain.Location `json:"location"`
	EstimatedCost string           `json:"estimatedCost"`
	Notes         string           `json:"notes"`
}

// itemPatchRequest is the body for a partial item update. A dayId moves the
// item to the end of that day.
type itemPatchRequest struct {
	Name          *string          `json:"name"`
	Time          *string          `json:"time"`
	Duration      *string          `json:"duration"`
	Type          *string          `json:"type"`
	Rating        *float64         `json:"rating"`
	Image         *string          `json:"image"`
	Location      *domain.Location `json:"location"`
	EstimatedCost *string          `json:"estimatedCost"`
	Notes         *string          `json:"notes"`
	DayID         *string          `json:"dayId"`
}

// reorderRequest carries the full desired item-id order for a day.
type reorderRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// moveRequest carries one drag gesture: move sourceId to targetId's slot.
type moveRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// handleAddItem handles POST /days/{dayID}/items.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.trips.AddItem(r.Context(), chi.URLParam(r, "dayID"), draftFromRequest(req))
	if err != nil {
		writeItemMutationError(w, err, "day not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleAddItemForDate handles POST /trips/{tripID}/days/{date}/items.
// The day is created lazily when the trip has no day for that date.
func (s *Server) handleAddItemForDate(w http.ResponseWriter, r *http.Request) {
	var req itemDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.trips.AddItemForDate(
		r.Context(),
		chi.URLParam(r, "tripID"),
		chi.URLParam(r, "date"),
		draftFromRequest(req),
	)
	if err != nil {
		writeItemMutationError(w, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateItem handles PATCH /days/{dayID}/items/{itemID}.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	patch := domain.ItemPatch{
		Name:          req.Name,
		Time:          req.Time,
		Duration:      req.Duration,
		Type:          req.Type,
		Rating:        req.Rating,
		Image:         req.Image,
		Location:      req.Location,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
		DayID:         req.DayID,
	}

	updated, err := s.trips.UpdateItem(r.Context(), chi.URLParam(r, "dayID"), chi.URLParam(r, "itemID"), patch)
	if err != nil {
		writeItemMutationError(w, err, "day or item not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleRemoveItem handles DELETE /items/{itemID}. Deletion is idempotent:
// an id that matches nothing still yields 204.
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.RemoveItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		saveFailed(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReorderItems handles PUT /days/{dayID}/items/order. The request
// names the desired id order; the handler resolves ids against the day's
// current items and always submits a permutation — unknown ids are ignored
// and unmentioned items keep their relative order at the end.
func (s *Server) handleReorderItems(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	dayID := chi.URLParam(r, "dayID")
	day, err := s.trips.GetDay(r.Context(), dayID)
	if err != nil {
		notFound(w, "day not found")
		return
	}

	newOrder := resolveOrder(day.Items, req.ItemIDs)
	if err := s.trips.ReorderItems(r.Context(), dayID, newOrder); err != nil {
		writeItemMutationError(w, err, "day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMoveItem handles POST /days/{dayID}/items/move — the drag-and-drop
// gesture. Self-drops and unknown ids are silent no-ops.
func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	err := s.trips.MoveItem(r.Context(), chi.URLParam(r, "dayID"), req.SourceID, req.TargetID)
	if err != nil {
		writeItemMutationError(w, err, "day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeItemMutationError maps service errors from item mutations to HTTP.
func writeItemMutationError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(w, notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		validationError(w, err)
	case errors.Is(err, domain.ErrStoreWrite):
		saveFailed(w)
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// draftFromRequest converts the wire draft to the domain draft.
func draftFromRequest(req itemDraftRequest) domain.ItemDraft {
	draft := domain.ItemDraft{
		Name:          req.Name,
		Time:          req.Time,
		Duration:      req.Duration,
		Type:          req.Type,
		Rating:        req.Rating,
		Image:         req.Image,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
	}
	if req.Location != nil {
		draft.Location = *req.Location
	}
	return draft
}

// resolveOrder builds a permutation of items from the requested id order:
// listed ids first (unknowns skipped), then any items the request did not
// mention, in their current relative order.
func resolveOrder(items []domain.ItineraryItem, ids []string) []domain.ItineraryItem {
	byID := make(map[string]int, len(items))
	for i, item := range items {
		byID[item.ID] = i
	}

	used := make(map[string]bool, len(ids))
	out := make([]domain.ItineraryItem, 0, len(items))
	for _, id := range ids {
		if i, ok := byID[id]; ok && !used[id] {
			out = append(out, items[i])
			used[id] = true
		}
	}
	for _, item := range items {
		if !used[item.ID] {
			out = append(out, item)
		}
	}
	return out
}
