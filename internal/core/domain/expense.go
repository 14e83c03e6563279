package domain

// Expense is one persisted spending event.
// Rows are append-only: once stored an Expense is never updated or deleted.
type Expense struct {
	// ID is assigned by the store on insert. IDs increase monotonically
	// and are never reused.
	ID int64 `json:"id"`

	// Date is an opaque, lexically ordered token. The store never parses it,
	// so range queries only behave when callers use a sortable format
	// such as ISO 8601 (2024-01-05).
	Date string `json:"date"`

	// Amount is the spent amount. Sign and range are not restricted.
	Amount float64 `json:"amount"`

	// Category is the caller-defined primary classification.
	Category string `json:"category"`

	// Subcategory is an optional refinement of Category.
	Subcategory string `json:"subcategory"`

	// Note is optional free text.
	Note string `json:"note"`
}

// NewExpense holds the parameters for inserting an Expense.
// Subcategory and Note default to the empty string.
type NewExpense struct {
	Date        string
	Amount      float64
	Category    string
	Subcategory string
	Note        string
}

// DateRange is an inclusive range compared lexically: a row matches
// when Start <= Date <= End.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether date falls inside the range.
func (r DateRange) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

// SummaryFilter restricts a summary.
// The zero value summarises every category.
type SummaryFilter struct {
	// Category limits the summary to a single category when non-empty.
	Category string
}

// Matches reports whether category passes the filter.
func (f SummaryFilter) Matches(category string) bool {
	return f.Category == "" || f.Category == category
}

// CategoryTotal is the summed amount of one category over a date range.
type CategoryTotal struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
}
