package driven

import (
	"context"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// ExpenseStore persists expense rows.
// Every failure wraps domain.ErrStorage. Implementations acquire and release
// their own connection per call and keep no state between calls.
type ExpenseStore interface {
	// Initialize ensures the expenses relation exists.
	// Safe to call repeatedly; later calls are no-ops.
	Initialize(ctx context.Context) error

	// Insert persists a new row and returns its assigned ID.
	Insert(ctx context.Context, expense domain.NewExpense) (int64, error)

	// QueryRange returns rows whose date lies in the inclusive range,
	// ordered by ascending ID. An empty match is an empty slice.
	QueryRange(ctx context.Context, r domain.DateRange) ([]domain.Expense, error)

	// Summarize sums amounts per category for rows in the range that pass
	// the filter, ordered by category name ascending.
	// Categories without matching rows are omitted.
	Summarize(ctx context.Context, r domain.DateRange, filter domain.SummaryFilter) ([]domain.CategoryTotal, error)
}
