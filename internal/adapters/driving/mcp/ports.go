package mcp

import (
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Expense records and queries expenses.
	Expense driving.ExpenseService

	// Categories serves the categories resource.
	Categories driving.CategoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Expense == nil {
		return ErrMissingExpenseService
	}
	if p.Categories == nil {
		return ErrMissingCategoryService
	}
	return nil
}
