// Package domain defines the core business entities for the expense tracker.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Expense: A single persisted spending event
//   - NewExpense: Insert parameters with documented defaults
//   - DateRange: An inclusive, lexically compared date range
//   - SummaryFilter: Optional restriction of a summary to one category
//   - CategoryTotal: The summed amount of one category
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
