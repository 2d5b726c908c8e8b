package service

import (
	"context"
	"fmt"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// MoveItem translates a drag gesture into a reorder: the item with sourceID
// is removed from its current position and inserted at targetID's position,
// preserving the relative order of all untouched items (standard list-splice
// semantics). The result is always a permutation of the day's items, so it
// satisfies ReorderItems' contract by construction.
//
// Dropping an item on itself, or referencing an id the day does not contain,
// is a no-op: no reorder happens and nothing is persisted.
// Returns domain.ErrNotFound only when the day itself does not exist.
func (s *ItineraryService) MoveItem(ctx context.Context, dayID, sourceID, targetID string) error {
	if sourceID == targetID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return fmt.Errorf("service.ItineraryService.MoveItem: %w", domain.ErrNotFound)
	}

	newOrder, moved := spliceMove(day.Items, sourceID, targetID)
	if !moved {
		return nil
	}

	day.Items = newOrder
	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("service.ItineraryService.MoveItem: %w", err)
	}
	return nil
}

// spliceMove returns a copy of items with the source item moved to the
// target item's index. The second return is false when either id is absent.
func spliceMove(items []domain.ItineraryItem, sourceID, targetID string) ([]domain.ItineraryItem, bool) {
	src, dst := -1, -1
	for i := range items {
		switch items[i].ID {
		case sourceID:
			src = i
		case targetID:
			dst = i
		}
	}
	if src < 0 || dst < 0 {
		return nil, false
	}

	out := make([]domain.ItineraryItem, 0, len(items))
	moved := items[src]
	out = append(out, items[:src]...)
	out = append(out, items[src+1:]...)

	out = append(out, domain.ItineraryItem{})
	copy(out[dst+1:], out[dst:])
	out[dst] = moved
	return out, true
}
