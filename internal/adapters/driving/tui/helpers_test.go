package tui

import "github.com/custodia-labs/expense-tracker/internal/core/domain"

func rangeOf(start, end string) domain.DateRange {
	return domain.DateRange{Start: start, End: end}
}
