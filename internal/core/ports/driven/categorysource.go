package driven

import "context"

// CategorySource provides the externally maintained category list.
type CategorySource interface {
	// Read returns the raw category document. It is re-read on every call
	// so edits are visible without a restart. Returns an error wrapping
	// domain.ErrResourceNotFound when the backing file is missing or unreadable.
	Read(ctx context.Context) ([]byte, error)

	// Path returns the location of the backing file.
	Path() string
}
