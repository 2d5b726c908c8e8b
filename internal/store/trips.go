package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// TripStore reads and writes the full trip collection through a BlobStore.
// It owns the JSON codec and the corruption policy: an unreadable or
// malformed stored value decodes as an empty collection, never an error,
// so a bad blob can never brick a session.
type TripStore struct {
	blobs BlobStore
	log   *slog.Logger
}

// NewTripStore constructs a TripStore on top of the given BlobStore.
func NewTripStore(blobs BlobStore, log *slog.Logger) *TripStore {
	if log == nil {
		log = slog.Default()
	}
	return &TripStore{blobs: blobs, log: log}
}

// Load returns all persisted trips in storage order. Absent or corrupt
// storage yields an empty slice; the corruption case is logged and the bad
// value is left in place until the next Save replaces it.
func (s *TripStore) Load(ctx context.Context) []domain.Trip {
	data, err := s.blobs.Read(ctx, TripsKey)
	if err != nil {
		s.log.Warn("trip storage unreadable, starting empty", "error", err)
		return []domain.Trip{}
	}
	if len(data) == 0 {
		return []domain.Trip{}
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		s.log.Warn("trip storage corrupt, starting empty", "error", err)
		return []domain.Trip{}
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips
}

// Save serializes the entire collection and replaces the stored value.
func (s *TripStore) Save(ctx context.Context, trips []domain.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("store.TripStore.Save: %w", err)
	}
	if err := s.blobs.Write(ctx, TripsKey, data); err != nil {
		return fmt.Errorf("store.TripStore.Save: %w", err)
	}
	return nil
}
