// Package memory provides in-memory implementations of driven port interfaces.
// They mirror the SQLite adapter's ordering and grouping rules and exist
// for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
)

// Ensure ExpenseStore implements the interface.
var _ driven.ExpenseStore = (*ExpenseStore)(nil)

// ExpenseStore is an in-memory implementation of driven.ExpenseStore.
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses []domain.Expense
	lastID   int64
}

// NewExpenseStore creates a new in-memory expense store.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{
		expenses: make([]domain.Expense, 0),
	}
}

// Initialize is a no-op; the store is ready on construction.
func (s *ExpenseStore) Initialize(_ context.Context) error {
	return nil
}

// Insert appends a row with the next ID.
func (s *ExpenseStore) Insert(_ context.Context, expense domain.NewExpense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	s.expenses = append(s.expenses, domain.Expense{
		ID:          s.lastID,
		Date:        expense.Date,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Subcategory: expense.Subcategory,
		Note:        expense.Note,
	})
	return s.lastID, nil
}

// QueryRange returns matching rows in ID order. Rows are appended in ID
// order so no sort is needed.
func (s *ExpenseStore) QueryRange(_ context.Context, r domain.DateRange) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Expense, 0)
	for _, e := range s.expenses {
		if r.Contains(e.Date) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Summarize totals matching rows per category, sorted by category.
func (s *ExpenseStore) Summarize(
	_ context.Context,
	r domain.DateRange,
	filter domain.SummaryFilter,
) ([]domain.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sums := make(map[string]float64)
	for _, e := range s.expenses {
		if r.Contains(e.Date) && filter.Matches(e.Category) {
			sums[e.Category] += e.Amount
		}
	}

	result := make([]domain.CategoryTotal, 0, len(sums))
	for category, total := range sums {
		result = append(result, domain.CategoryTotal{Category: category, TotalAmount: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result, nil
}
