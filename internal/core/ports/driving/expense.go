package driving

import (
	"context"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// ExpenseService records and queries expenses.
type ExpenseService interface {
	// Add records a new expense and returns its ID.
	Add(ctx context.Context, expense domain.NewExpense) (int64, error)

	// List returns expenses dated inside the inclusive range, oldest ID first.
	List(ctx context.Context, r domain.DateRange) ([]domain.Expense, error)

	// Summarize returns per-category totals for the inclusive range,
	// ordered by category name.
	Summarize(ctx context.Context, r domain.DateRange, filter domain.SummaryFilter) ([]domain.CategoryTotal, error)
}
