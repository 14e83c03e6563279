// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// expense tracker. It lets AI assistants record, list and summarise expenses
// and read the advisory category list.
package mcp

import "errors"

var (
	// ErrMissingExpenseService is returned when the expense service is not provided.
	ErrMissingExpenseService = errors.New("mcp: expense service is required")

	// ErrMissingCategoryService is returned when the category service is not provided.
	ErrMissingCategoryService = errors.New("mcp: category service is required")
)
