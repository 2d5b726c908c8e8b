package domain

// Expense is a single recorded cost against a trip's budget.
// Date is an ISO 8601 date string, defaulted to today at creation.
type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ExpenseDraft carries the user-supplied fields for a new expense.
type ExpenseDraft struct {
	Amount      float64
	Category    string
	Description string
	Date        string
}

// ExpenseSummary reports a trip's spend against its budget. OverBudget is
// raised when more than 80% of the budget is used, mirroring the tracker's
// warning threshold.
type ExpenseSummary struct {
	Total       float64 `json:"total"`
	BudgetLimit float64 `json:"budgetLimit"`
	UsedPercent float64 `json:"usedPercent"`
	OverBudget  bool    `json:"overBudget"`
}

// ExpenseCategory pairs a category value with its display label and icon.
type ExpenseCategory struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ExpenseCategories is the closed set of accepted expense categories.
var ExpenseCategories = []ExpenseCategory{
	{Value: "transport", Label: "Trasporti", Icon: "🚗"},
	{Value: "food", Label: "Cibo", Icon: "🍽️"},
	{Value: "accommodation", Label: "Alloggio", Icon: "🏨"},
	{Value: "activities", Label: "Attività", Icon: "🎯"},
	{Value: "shopping", Label: "Shopping", Icon: "🛍️"},
	{Value: "other", Label: "Altro", Icon: "💰"},
}

// ValidExpenseCategory reports whether value is one of ExpenseCategories.
func ValidExpenseCategory(value string) bool {
	for _, c := range ExpenseCategories {
		if c.Value == value {
			return true
		}
	}
	return false
}
