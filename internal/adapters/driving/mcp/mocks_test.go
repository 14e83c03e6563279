package mcp

import (
	"context"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// mockExpenseService is a mock implementation of driving.ExpenseService.
type mockExpenseService struct {
	id       int64
	expenses []domain.Expense
	totals   []domain.CategoryTotal
	err      error

	added     domain.NewExpense
	listRange domain.DateRange
	filter    domain.SummaryFilter
}

func (m *mockExpenseService) Add(_ context.Context, expense domain.NewExpense) (int64, error) {
	m.added = expense
	return m.id, m.err
}

func (m *mockExpenseService) List(_ context.Context, r domain.DateRange) ([]domain.Expense, error) {
	m.listRange = r
	return m.expenses, m.err
}

func (m *mockExpenseService) Summarize(
	_ context.Context,
	r domain.DateRange,
	filter domain.SummaryFilter,
) ([]domain.CategoryTotal, error) {
	m.listRange = r
	m.filter = filter
	return m.totals, m.err
}

// mockCategoryService is a mock implementation of driving.CategoryService.
type mockCategoryService struct {
	data []byte
	err  error
}

func (m *mockCategoryService) Categories(_ context.Context) ([]byte, error) {
	return m.data, m.err
}

func (m *mockCategoryService) Location() string {
	return "/tmp/categories.json"
}

func newTestServer(expense *mockExpenseService, categories *mockCategoryService) (*Server, error) {
	if expense == nil {
		expense = &mockExpenseService{}
	}
	if categories == nil {
		categories = &mockCategoryService{}
	}
	return NewServer(&Ports{Expense: expense, Categories: categories})
}
