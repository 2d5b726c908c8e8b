package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// ExportTrip serializes a trip to indented JSON, byte-for-byte the same
// shape as the persisted representation, and derives the download filename
// from the trip name (lowercased, whitespace runs replaced with
// underscores, ".json" suffix).
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) ExportTrip(ctx context.Context, tripID string) (filename string, data []byte, err error) {
	s.mu.Lock()
	t := s.findTrip(tripID)
	if t == nil {
		s.mu.Unlock()
		return "", nil, fmt.Errorf("service.ItineraryService.ExportTrip: %w", domain.ErrNotFound)
	}
	trip := cloneTrip(*t)
	s.mu.Unlock()

	data, err = json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("service.ItineraryService.ExportTrip: %w", err)
	}
	return exportFilename(trip.Name), data, nil
}

// exportFilename turns a trip name into a safe download filename.
func exportFilename(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_") + ".json"
}
