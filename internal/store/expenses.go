package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// ExpenseStore persists the per-trip expense ledger under its own key,
// keyed by trip ID. Same codec policy as TripStore: corrupt storage decodes
// as empty, never an error.
type ExpenseStore struct {
	blobs BlobStore
	log   *slog.Logger
}

// NewExpenseStore constructs an ExpenseStore on top of the given BlobStore.
func NewExpenseStore(blobs BlobStore, log *slog.Logger) *ExpenseStore {
	if log == nil {
		log = slog.Default()
	}
	return &ExpenseStore{blobs: blobs, log: log}
}

// Load returns the expense ledger for all trips. Absent or corrupt storage
// yields an empty map.
func (s *ExpenseStore) Load(ctx context.Context) map[string][]domain.Expense {
	data, err := s.blobs.Read(ctx, ExpensesKey)
	if err != nil {
		s.log.Warn("expense storage unreadable, starting empty", "error", err)
		return map[string][]domain.Expense{}
	}
	if len(data) == 0 {
		return map[string][]domain.Expense{}
	}

	var ledger map[string][]domain.Expense
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.log.Warn("expense storage corrupt, starting empty", "error", err)
		return map[string][]domain.Expense{}
	}
	if ledger == nil {
		ledger = map[string][]domain.Expense{}
	}
	return ledger
}

// Save serializes the whole ledger and replaces the stored value.
func (s *ExpenseStore) Save(ctx context.Context, ledger map[string][]domain.Expense) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("store.ExpenseStore.Save: %w", err)
	}
	if err := s.blobs.Write(ctx, ExpensesKey, data); err != nil {
		return fmt.Errorf("store.ExpenseStore.Save: %w", err)
	}
	return nil
}
