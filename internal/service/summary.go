package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// DaySummary totals a day's items. Hours come from the leading integer of
// each duration string ("2 ore" → 2); anything unparsable ("Mezza giornata")
// counts as one hour. Cost comes from the leading integer after stripping
// the euro sign ("€15" → 15); "Gratis" and unparsable values count as zero.
// Returns domain.ErrNotFound if dayID does not exist.
func (s *ItineraryService) DaySummary(ctx context.Context, dayID string) (domain.DaySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.findDay(dayID)
	if day == nil {
		return domain.DaySummary{}, fmt.Errorf("service.ItineraryService.DaySummary: %w", domain.ErrNotFound)
	}

	sum := domain.DaySummary{
		Date:      day.Date,
		ItemCount: len(day.Items),
	}
	for _, item := range day.Items {
		sum.TotalHours += durationHours(item.Duration)
		sum.TotalCost += costEuros(item.EstimatedCost)
	}
	return sum, nil
}

// durationHours parses the leading integer of a free-text duration.
func durationHours(duration string) int {
	fields := strings.Fields(duration)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(leadingDigits(fields[0]))
	if err != nil {
		return 1
	}
	return n
}

// costEuros parses the leading integer of a free-text cost, treating the
// literal "Gratis" as zero. Decimals are ignored, matching the original
// aggregation.
func costEuros(cost string) int {
	if cost == "" || cost == "Gratis" {
		return 0
	}
	n, err := strconv.Atoi(leadingDigits(strings.TrimPrefix(cost, "€")))
	if err != nil {
		return 0
	}
	return n
}

// leadingDigits returns the maximal digit prefix of s ("15,50" → "15").
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
