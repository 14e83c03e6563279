package file

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
)

// Ensure CategoryFile implements the interface.
var _ driven.CategorySource = (*CategoryFile)(nil)

// CategoryFile serves the category list from a file on disk.
// The file is read on every call and returned byte for byte.
type CategoryFile struct {
	path string
}

// NewCategoryFile creates a category source backed by path.
// The file does not need to exist yet.
func NewCategoryFile(path string) *CategoryFile {
	return &CategoryFile{path: path}
}

// Read returns the current file contents. A missing or unreadable file
// yields an error wrapping domain.ErrResourceNotFound.
func (c *CategoryFile) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading categories from %s: %w: %w", c.path, domain.ErrResourceNotFound, err)
	}
	return data, nil
}

// Path returns the backing file path.
func (c *CategoryFile) Path() string {
	return c.path
}
