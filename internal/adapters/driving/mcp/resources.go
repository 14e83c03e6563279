package mcp

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

// CategoriesURI identifies the categories resource.
const CategoriesURI = "expense://categories"

const (
	categoriesMIMEType = "application/json"
	binaryMIMEType     = "application/octet-stream"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         CategoriesURI,
		Name:        "categories",
		Description: "Suggested expense categories and subcategories",
		MIMEType:    categoriesMIMEType,
	}, s.handleCategoriesResource)
}

// handleCategoriesResource returns the categories file exactly as stored.
// The file is read on every request. Bytes that are not valid UTF-8 are
// sent as a base64 blob, since a text field cannot carry them unchanged.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := s.ports.Categories.Categories(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	contents := &mcp.ResourceContents{
		URI:      req.Params.URI,
		MIMEType: categoriesMIMEType,
		Text:     string(data),
	}
	if !utf8.Valid(data) {
		contents.MIMEType = binaryMIMEType
		contents.Text = ""
		contents.Blob = data
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{contents},
	}, nil
}
