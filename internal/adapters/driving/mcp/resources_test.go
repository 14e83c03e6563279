package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleCategoriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns file bytes verbatim", func(t *testing.T) {
		raw := "{\n  \"food\": [\"groceries\", \"dining\"]\n}\n"
		server, err := newTestServer(nil, &mockCategoryService{data: []byte(raw)})
		require.NoError(t, err)

		result, err := server.handleCategoriesResource(ctx, readRequest(CategoriesURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, CategoriesURI, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Equal(t, raw, result.Contents[0].Text)
	})

	t.Run("invalid UTF-8 is returned as a blob", func(t *testing.T) {
		raw := []byte{'{', '"', 0xff, 0xfe, '"', '}'}
		server, err := newTestServer(nil, &mockCategoryService{data: raw})
		require.NoError(t, err)

		result, err := server.handleCategoriesResource(ctx, readRequest(CategoriesURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, raw, result.Contents[0].Blob)
		assert.Empty(t, result.Contents[0].Text)
		assert.Equal(t, "application/octet-stream", result.Contents[0].MIMEType)

		_, err = json.Marshal(result.Contents[0])
		assert.NoError(t, err)
	})

	t.Run("missing file is resource not found", func(t *testing.T) {
		notFound := errors.Join(domain.ErrResourceNotFound, errors.New("no such file"))
		server, err := newTestServer(nil, &mockCategoryService{err: notFound})
		require.NoError(t, err)

		_, err = server.handleCategoriesResource(ctx, readRequest(CategoriesURI))

		require.Error(t, err)
		assert.Equal(t, mcp.ResourceNotFoundError(CategoriesURI).Error(), err.Error())
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		server, err := newTestServer(nil, &mockCategoryService{err: domain.ErrNotImplemented})
		require.NoError(t, err)

		_, err = server.handleCategoriesResource(ctx, readRequest(CategoriesURI))

		assert.ErrorIs(t, err, domain.ErrNotImplemented)
	})
}

func TestHandleSubscribe(t *testing.T) {
	err := handleSubscribe(context.Background(), &mcp.SubscribeRequest{
		Params: &mcp.SubscribeParams{URI: CategoriesURI},
	})
	assert.NoError(t, err)

	err = handleSubscribe(context.Background(), &mcp.SubscribeRequest{
		Params: &mcp.SubscribeParams{URI: "expense://unknown"},
	})
	assert.Error(t, err)

	err = handleUnsubscribe(context.Background(), &mcp.UnsubscribeRequest{
		Params: &mcp.UnsubscribeParams{URI: CategoriesURI},
	})
	assert.NoError(t, err)
}
