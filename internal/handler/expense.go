package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paolobenve/wanderlust/internal/domain"
)

// expenseDraftRequest is the body for recording an expense.
type expenseDraftRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// expenseListResponse bundles a trip's expenses with the budget summary so
// clients need a single round trip to render the tracker.
type expenseListResponse struct {
	Expenses   []domain.Expense         `json:"expenses"`
	Summary    domain.ExpenseSummary    `json:"summary"`
	Categories []domain.ExpenseCategory `json:"categories"`
}

// handleAddExpense handles POST /trips/{tripID}/expenses.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body: "+err.Error())
		return
	}

	draft := domain.ExpenseDraft{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	created, err := s.expenses.AddExpense(r.Context(), chi.URLParam(r, "tripID"), draft)
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
	writeJSON(w, http.StatusCreated, created)
}

// handleListExpenses handles GET /trips/{tripID}/expenses. Expenses are
// ordered most recent first.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	expenses, err := s.expenses.ListExpenses(r.Context(), tripID)
	if err != nil {
		notFound(w, "trip not found")
		return
	}
	summary, err := s.expenses.Summary(r.Context(), tripID)
	if err != nil {
		notFound(w, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, expenseListResponse{
		Expenses:   expenses,
		Summary:    summary,
		Categories: domain.ExpenseCategories,
	})
}
