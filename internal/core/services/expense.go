package services

import (
	"context"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
	"github.com/custodia-labs/expense-tracker/internal/logger"
)

// Ensure ExpenseService implements the interface.
var _ driving.ExpenseService = (*ExpenseService)(nil)

// ExpenseService records and queries expenses.
// It holds no state of its own; every call is a single store operation.
type ExpenseService struct {
	store driven.ExpenseStore
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store driven.ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// Add records a new expense. Date and amount are stored as given.
func (s *ExpenseService) Add(ctx context.Context, expense domain.NewExpense) (int64, error) {
	if s.store == nil {
		return 0, domain.ErrNotImplemented
	}

	id, err := s.store.Insert(ctx, expense)
	if err != nil {
		return 0, err
	}
	logger.Debug("Added expense %d: date=%q amount=%g category=%q", id, expense.Date, expense.Amount, expense.Category)
	return id, nil
}

// List returns expenses inside the inclusive range in ID order.
func (s *ExpenseService) List(ctx context.Context, r domain.DateRange) ([]domain.Expense, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	expenses, err := s.store.QueryRange(ctx, r)
	if err != nil {
		return nil, err
	}
	logger.Debug("Listed %d expenses between %q and %q", len(expenses), r.Start, r.End)
	return expenses, nil
}

// Summarize returns per-category totals for the inclusive range.
func (s *ExpenseService) Summarize(
	ctx context.Context,
	r domain.DateRange,
	filter domain.SummaryFilter,
) ([]domain.CategoryTotal, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	totals, err := s.store.Summarize(ctx, r, filter)
	if err != nil {
		return nil, err
	}
	logger.Debug("Summarized %d categories between %q and %q (filter %q)",
		len(totals), r.Start, r.End, filter.Category)
	return totals, nil
}
