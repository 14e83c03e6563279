package services

import (
	"context"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// Ensure CategoryService implements the interface.
var _ driving.CategoryService = (*CategoryService)(nil)

// CategoryService serves the advisory category list.
// Content is neither cached nor validated.
type CategoryService struct {
	source driven.CategorySource
}

// NewCategoryService creates a new category service.
func NewCategoryService(source driven.CategorySource) *CategoryService {
	return &CategoryService{source: source}
}

// Categories returns the category document exactly as stored.
func (s *CategoryService) Categories(ctx context.Context) ([]byte, error) {
	if s.source == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.source.Read(ctx)
}

// Location returns the path of the category document.
func (s *CategoryService) Location() string {
	if s.source == nil {
		return ""
	}
	return s.source.Path()
}
