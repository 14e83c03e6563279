package driving

import "context"

// CategoryService exposes the advisory category list.
type CategoryService interface {
	// Categories returns the raw category document, verbatim.
	Categories(ctx context.Context) ([]byte, error)

	// Location returns where the category document is read from.
	Location() string
}
