package tui

import "errors"

// ErrMissingExpenseService is returned when the expense service is not provided.
var ErrMissingExpenseService = errors.New("tui: expense service is required")
