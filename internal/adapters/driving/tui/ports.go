// Package tui provides an interactive terminal user interface for browsing
// and recording expenses. It implements a driving adapter following
// hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Expense records and queries expenses.
	Expense driving.ExpenseService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Expense == nil {
		return ErrMissingExpenseService
	}
	return nil
}
