// Package service contains the business logic for the Wanderlust API.
// Services validate inputs, enforce business rules, and own all mutation of
// the trip collection. No storage codec lives here — services depend on the
// store types, and no other package may touch the persisted blobs.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/paolobenve/wanderlust/internal/domain"
	"github.com/paolobenve/wanderlust/internal/store"
)

// ItineraryService is the single authoritative owner of all trip data, in
// memory and in storage. Every mutation applies to the in-memory collection
// first and then re-serializes the whole collection through the TripStore.
//
// When persisting fails the in-memory mutation is kept — memory remains the
// session's source of truth — and the operation returns domain.ErrStoreWrite
// so the caller can surface "failed to save". Reads after a failed save still
// see the mutation.
type ItineraryService struct {
	mu    sync.Mutex
	store *store.TripStore

	trips     []domain.Trip
	currentID string
}

// NewItineraryService constructs the service and loads the persisted
// collection. Absent or corrupt storage starts the session empty.
func NewItineraryService(ctx context.Context, ts *store.TripStore) *ItineraryService {
	return &ItineraryService{
		store: ts,
		trips: ts.Load(ctx),
	}
}

// ListTrips returns all trips in storage order (creation order).
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) ListTrips(ctx context.Context) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTrips(s.trips)
}

// GetTrip returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *ItineraryService) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTrip(tripID)
	if t == nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.GetTrip: %w", domain.ErrNotFound)
	}
	return cloneTrip(*t), nil
}

// GetDay returns the day with dayID from whichever trip holds it.
// Returns domain.ErrNotFound if no such day exists.
func (s *ItineraryService) GetDay(ctx context.Context, dayID string) (domain.TravelDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return domain.TravelDay{}, fmt.Errorf("service.ItineraryService.GetDay: %w", domain.ErrNotFound)
	}
	out := *day
	out.Items = cloneItems(day.Items)
	return out, nil
}

// CreateTrip validates the draft, assigns a fresh ID, creates exactly one
// initial TravelDay dated draft.StartDate with no items, appends the trip to
// the collection, and persists. The new trip becomes the current trip.
// Returns domain.ErrValidation if name, startDate, or endDate is empty.
func (s *ItineraryService) CreateTrip(ctx context.Context, draft domain.TripDraft) (domain.Trip, error) {
	if err := validateTripDraft(draft); err != nil {
		return domain.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status := draft.Status
	if status == "" {
		status = domain.StatusPlanning
	}
	participants := draft.Participants
	if participants <= 0 {
		participants = 1
	}

	trip := domain.Trip{
		ID:           uuid.NewString(),
		Name:         draft.Name,
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		Participants: participants,
		Status:       status,
		Days: []domain.TravelDay{{
			ID:    uuid.NewString(),
			Date:  draft.StartDate,
			Items: []domain.ItineraryItem{},
		}},
	}

	s.trips = append(s.trips, trip)
	s.currentID = trip.ID

	if err := s.persist(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.CreateTrip: %w", err)
	}
	return cloneTrip(trip), nil
}

// UpdateTrip merges patch onto an existing trip's own fields (days are not
// touched here). Returns domain.ErrNotFound if the trip does not exist,
// domain.ErrValidation if the patch empties a required field.
func (s *ItineraryService) UpdateTrip(ctx context.Context, tripID string, patch domain.TripPatch) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTrip(tripID)
	if t == nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.UpdateTrip: %w", domain.ErrNotFound)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		}
		t.Name = *patch.Name
	}
	if patch.StartDate != nil {
		t.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		t.EndDate = *patch.EndDate
	}
	if patch.Participants != nil && *patch.Participants > 0 {
		t.Participants = *patch.Participants
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}

	if err := s.persist(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.UpdateTrip: %w", err)
	}
	return cloneTrip(*t), nil
}

// SetCurrentTrip points the selection at tripID. Purely a selection pointer,
// not a data mutation; it is not persisted.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *ItineraryService) SetCurrentTrip(ctx context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTrip(tripID) == nil {
		return fmt.Errorf("service.ItineraryService.SetCurrentTrip: %w", domain.ErrNotFound)
	}
	s.currentID = tripID
	return nil
}

// CurrentTrip returns the currently selected trip, or ok=false when none is
// selected (or the selected trip has since been removed).
func (s *ItineraryService) CurrentTrip(ctx context.Context) (domain.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTrip(s.currentID)
	if t == nil {
		return domain.Trip{}, false
	}
	return cloneTrip(*t), true
}

// AddItem assigns a fresh ID to the draft and appends it to the end of the
// target day's items. Returns domain.ErrNotFound when no day with dayID
// exists in any trip, domain.ErrValidation when the draft has no name.
func (s *ItineraryService) AddItem(ctx context.Context, dayID string, draft domain.ItemDraft) (domain.ItineraryItem, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return domain.ItineraryItem{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItem: %w", domain.ErrNotFound)
	}

	item := newItem(draft, len(day.Items))
	day.Items = append(day.Items, item)

	if err := s.persist(ctx); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}
	return item, nil
}

// AddItemForDate appends an item to the day with the given date inside the
// given trip, creating the day lazily when the trip has no day for that date.
// Days created here are appended after the existing ones; presentation order
// is insertion order, not date order.
func (s *ItineraryService) AddItemForDate(ctx context.Context, tripID, date string, draft domain.ItemDraft) (domain.ItineraryItem, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return domain.ItineraryItem{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(date) == "" {
		return domain.ItineraryItem{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTrip(tripID)
	if t == nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItemForDate: %w", domain.ErrNotFound)
	}

	var day *domain.TravelDay
	for i := range t.Days {
		if t.Days[i].Date == date {
			day = &t.Days[i]
			break
		}
	}
	if day == nil {
		t.Days = append(t.Days, domain.TravelDay{
			ID:    uuid.NewString(),
			Date:  date,
			Items: []domain.ItineraryItem{},
		})
		day = &t.Days[len(t.Days)-1]
	}

	item := newItem(draft, len(day.Items))
	day.Items = append(day.Items, item)

	if err := s.persist(ctx); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItemForDate: %w", err)
	}
	return item, nil
}

// RemoveItem removes the first item matching itemID, scanning all trips and
// days in order. Absence is success: deleting an id that does not exist (or
// was already deleted) is a no-op, never domain.ErrNotFound. Nothing is
// persisted when no item matched.
func (s *ItineraryService) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ti := range s.trips {
		for di := range s.trips[ti].Days {
			day := &s.trips[ti].Days[di]
			for ii := range day.Items {
				if day.Items[ii].ID != itemID {
					continue
				}
				day.Items = append(day.Items[:ii], day.Items[ii+1:]...)
				if err := s.persist(ctx); err != nil {
					return fmt.Errorf("service.ItineraryService.RemoveItem: %w", err)
				}
				return nil
			}
		}
	}
	return nil
}

// UpdateItem merges patch onto the item found within dayID; fields not set
// in the patch are unchanged. A patch carrying DayID moves the item to the
// end of that day's items; the remove and append are persisted as one write,
// so no partial state is ever observable outside the service.
// Returns domain.ErrNotFound if the day, the item, or the move target day
// does not exist.
func (s *ItineraryService) UpdateItem(ctx context.Context, dayID, itemID string, patch domain.ItemPatch) (domain.ItineraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: day: %w", domain.ErrNotFound)
	}

	idx := -1
	for i := range day.Items {
		if day.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: item: %w", domain.ErrNotFound)
	}

	item := day.Items[idx]
	applyItemPatch(&item, patch)

	if patch.DayID != nil && *patch.DayID != dayID {
		target := s.findDay(*patch.DayID)
		if target == nil {
			return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: target day: %w", domain.ErrNotFound)
		}
		day.Items = append(day.Items[:idx], day.Items[idx+1:]...)
		target.Items = append(target.Items, item)
	} else {
		day.Items[idx] = item
	}

	if err := s.persist(ctx); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.UpdateItem: %w", err)
	}
	return item, nil
}

// ReorderItems replaces the target day's items with newOrder verbatim.
// By contract newOrder is a permutation of the current items; the service
// does not verify this — producing a valid permutation is the caller's
// responsibility (MoveItem always does).
// Returns domain.ErrNotFound if dayID does not exist.
func (s *ItineraryService) ReorderItems(ctx context.Context, dayID string, newOrder []domain.ItineraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return fmt.Errorf("service.ItineraryService.ReorderItems: %w", domain.ErrNotFound)
	}

	day.Items = cloneItems(newOrder)

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("service.ItineraryService.ReorderItems: %w", err)
	}
	return nil
}

// ---- internals -------------------------------------------------------------

// persist re-serializes the whole collection. Callers hold s.mu.
// A failed save keeps the in-memory state and is reported as ErrStoreWrite.
func (s *ItineraryService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.trips); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrStoreWrite, err)
	}
	return nil
}

// findTrip returns a pointer into s.trips, or nil. Callers hold s.mu.
func (s *ItineraryService) findTrip(tripID string) *domain.Trip {
	if tripID == "" {
		return nil
	}
	for i := range s.trips {
		if s.trips[i].ID == tripID {
			return &s.trips[i]
		}
	}
	return nil
}

// findDay returns a pointer to the day with dayID across all trips, or nil.
// Callers hold s.mu.
func (s *ItineraryService) findDay(dayID string) *domain.TravelDay {
	for ti := range s.trips {
		for di := range s.trips[ti].Days {
			if s.trips[ti].Days[di].ID == dayID {
				return &s.trips[ti].Days[di]
			}
		}
	}
	return nil
}

// newItem builds a stored item from a draft: fresh ID, form-style defaults
// for the advisory fields, glyph derived from type when the draft has none.
// position is the item's index-to-be within the day, used for the default
// time slot.
func newItem(draft domain.ItemDraft, position int) domain.ItineraryItem {
	item := domain.ItineraryItem{
		ID:            uuid.NewString(),
		Name:          draft.Name,
		Time:          draft.Time,
		Duration:      draft.Duration,
		Type:          draft.Type,
		Rating:        draft.Rating,
		Image:         draft.Image,
		Location:      draft.Location,
		EstimatedCost: draft.EstimatedCost,
		Notes:         draft.Notes,
	}
	if item.Time == "" {
		item.Time = fmt.Sprintf("%d:00", 9+position)
	}
	if item.Duration == "" {
		item.Duration = "2 ore"
	}
	if item.Type == "" {
		item.Type = "Attrazione"
	}
	if item.Rating == 0 {
		item.Rating = 4.0
	}
	if item.Image == "" {
		item.Image = domain.GlyphForType(item.Type)
	}
	if item.Location.Address == "" {
		item.Location.Address = "Indirizzo da specificare"
	}
	return item
}

// applyItemPatch merges the set fields of patch onto item. DayID is handled
// by the caller.
func applyItemPatch(item *domain.ItineraryItem, patch domain.ItemPatch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Time != nil {
		item.Time = *patch.Time
	}
	if patch.Duration != nil {
		item.Duration = *patch.Duration
	}
	if patch.Type != nil {
		item.Type = *patch.Type
		if patch.Image == nil {
			item.Image = domain.GlyphForType(item.Type)
		}
	}
	if patch.Rating != nil {
		item.Rating = *patch.Rating
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.EstimatedCost != nil {
		item.EstimatedCost = *patch.EstimatedCost
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
}

// validateTripDraft enforces the create rules: name, startDate, and endDate
// must be non-empty. Date ordering and participant count are intentionally
// not validated here.
func validateTripDraft(draft domain.TripDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(draft.StartDate) == "" {
		return fmt.Errorf("%w: startDate is required", domain.ErrValidation)
	}
	if strings.TrimSpace(draft.EndDate) == "" {
		return fmt.Errorf("%w: endDate is required", domain.ErrValidation)
	}
	return nil
}

// ---- copy helpers ----------------------------------------------------------
// The service hands out copies so no caller can mutate shared state behind
// the lock's back.

func cloneTrips(trips []domain.Trip) []domain.Trip {
	out := make([]domain.Trip, len(trips))
	for i, t := range trips {
		out[i] = cloneTrip(t)
	}
	return out
}

func cloneTrip(t domain.Trip) domain.Trip {
	c := t
	c.Days = make([]domain.TravelDay, len(t.Days))
	for i, d := range t.Days {
		c.Days[i] = d
		c.Days[i].Items = cloneItems(d.Items)
	}
	return c
}

func cloneItems(items []domain.ItineraryItem) []domain.ItineraryItem {
	out := make([]domain.ItineraryItem, len(items))
	copy(out, items)
	return out
}
