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

// DefaultBudgetLimit is the per-trip budget in euro used for the summary
// warning threshold.
const DefaultBudgetLimit = 500

// ExpenseService tracks per-trip expenses against a budget. It holds the
// itinerary service because adding an expense requires verifying the parent
// trip exists. The ledger persists under its own storage key with the same
// write-everything policy as the trip collection.
type ExpenseService struct {
	mu     sync.Mutex
	trips  *ItineraryService
	store  *store.ExpenseStore
	ledger map[string][]domain.Expense
}

// NewExpenseService constructs the service and loads the persisted ledger.
func NewExpenseService(ctx context.Context, trips *ItineraryService, es *store.ExpenseStore) *ExpenseService {
	return &ExpenseService{
		trips:  trips,
		store:  es,
		ledger: es.Load(ctx),
	}
}

// AddExpense validates the draft, verifies the trip exists, assigns a fresh
// ID, prepends the expense (most recent first), and persists.
// Returns domain.ErrValidation for a non-positive amount, unknown category,
// or empty description; domain.ErrNotFound when the trip does not exist.
func (s *ExpenseService) AddExpense(ctx context.Context, tripID string, draft domain.ExpenseDraft) (domain.Expense, error) {
	if draft.Amount <= 0 {
		return domain.Expense{}, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if !domain.ValidExpenseCategory(draft.Category) {
		return domain.Expense{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, draft.Category)
	}
	if strings.TrimSpace(draft.Description) == "" {
		return domain.Expense{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	if _, err := s.trips.GetTrip(ctx, tripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.AddExpense: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expense := domain.Expense{
		ID:          uuid.NewString(),
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date,
	}
	if expense.Date == "" {
		expense.Date = today()
	}

	s.ledger[tripID] = append([]domain.Expense{expense}, s.ledger[tripID]...)

	if err := s.store.Save(ctx, s.ledger); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.AddExpense: %w: %s", domain.ErrStoreWrite, err)
	}
	return expense, nil
}

// ListExpenses returns a trip's expenses, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *ExpenseService) ListExpenses(ctx context.Context, tripID string) ([]domain.Expense, error) {
	if _, err := s.trips.GetTrip(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListExpenses: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := s.ledger[tripID]
	out := make([]domain.Expense, len(expenses))
	copy(out, expenses)
	return out, nil
}

// Summary reports a trip's total spend against the budget; OverBudget is
// raised above 80% of the limit.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *ExpenseService) Summary(ctx context.Context, tripID string) (domain.ExpenseSummary, error) {
	expenses, err := s.ListExpenses(ctx, tripID)
	if err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summary: %w", err)
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	used := total / DefaultBudgetLimit * 100

	return domain.ExpenseSummary{
		Total:       total,
		BudgetLimit: DefaultBudgetLimit,
		UsedPercent: used,
		OverBudget:  used > 80,
	}, nil
}
