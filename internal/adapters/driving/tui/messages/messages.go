// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewExpenses lists expenses in a date range.
	ViewExpenses
	// ViewSummary shows per-category totals.
	ViewSummary
	// ViewAddExpense is the form for recording an expense.
	ViewAddExpense
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewExpenses:
		return "expenses"
	case ViewSummary:
		return "summary"
	case ViewAddExpense:
		return "add_expense"
	default:
		return "unknown"
	}
}

// ExpensesLoaded carries the expenses for a date range.
type ExpensesLoaded struct {
	Range    domain.DateRange
	Expenses []domain.Expense
	Err      error
}

// SummaryLoaded carries per-category totals for a date range.
type SummaryLoaded struct {
	Range  domain.DateRange
	Totals []domain.CategoryTotal
	Err    error
}

// ExpenseAdded signals an expense was recorded.
type ExpenseAdded struct {
	ID  int64
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
