package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/config/file"
	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/expense-tracker/internal/core/services"
)

// connect wires an in-memory client to a server backed by the memory store
// and a categories file at categoriesPath.
func connect(
	t *testing.T,
	categoriesPath string,
	opts *mcp.ClientOptions,
) (*Server, *mcp.ClientSession) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewExpenseStore()
	require.NoError(t, store.Initialize(ctx))

	server, err := NewServer(&Ports{
		Expense:    services.NewExpenseService(store),
		Categories: services.NewCategoryService(file.NewCategoryFile(categoriesPath)),
	})
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, opts)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()       //nolint:errcheck
		serverSession.Wait() //nolint:errcheck
	})
	return server, session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s failed: %v", name, res.Content)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestEndToEnd_ExpenseScenario(t *testing.T) {
	_, session := connect(t, filepath.Join(t.TempDir(), "categories.json"), nil)

	res := callTool(t, session, "add_expense", map[string]any{
		"date": "2024-01-05", "amount": 12.50, "category": "food", "note": "lunch",
	})
	assert.JSONEq(t, `{"status":"ok","id":1}`, textOf(t, res))

	res = callTool(t, session, "add_expense", map[string]any{
		"date": "2024-01-10", "amount": 40.00, "category": "transport",
	})
	assert.JSONEq(t, `{"status":"ok","id":2}`, textOf(t, res))

	res = callTool(t, session, "list_expenses", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31",
	})
	assert.JSONEq(t, `[
		{"id":1,"date":"2024-01-05","amount":12.5,"category":"food","subcategory":"","note":"lunch"},
		{"id":2,"date":"2024-01-10","amount":40,"category":"transport","subcategory":"","note":""}
	]`, textOf(t, res))

	structured, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var listed ListExpensesOutput
	require.NoError(t, json.Unmarshal(structured, &listed))
	assert.Len(t, listed.Expenses, 2)

	res = callTool(t, session, "summarize", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31",
	})
	assert.JSONEq(t, `[{"category":"food","total_amount":12.5},{"category":"transport","total_amount":40}]`,
		textOf(t, res))

	res = callTool(t, session, "summarize", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31", "category": "food",
	})
	assert.JSONEq(t, `[{"category":"food","total_amount":12.5}]`, textOf(t, res))

	res = callTool(t, session, "summarize", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31", "category": nil,
	})
	assert.JSONEq(t, `[{"category":"food","total_amount":12.5},{"category":"transport","total_amount":40}]`,
		textOf(t, res))

	res = callTool(t, session, "summarize", map[string]any{
		"start_date": "2024-01-01", "end_date": "2024-01-31", "category": "unknown",
	})
	assert.Equal(t, "[]", textOf(t, res))

	res = callTool(t, session, "list_expenses", map[string]any{
		"start_date": "2025-01-01", "end_date": "2025-01-31",
	})
	assert.Equal(t, "[]", textOf(t, res))
}

func TestEndToEnd_ListTools(t *testing.T) {
	_, session := connect(t, filepath.Join(t.TempDir(), "categories.json"), nil)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"add_expense", "list_expenses", "summarize"}, names)
}

func TestEndToEnd_AddExpenseRequiresFields(t *testing.T) {
	_, session := connect(t, filepath.Join(t.TempDir(), "categories.json"), nil)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add_expense",
		Arguments: map[string]any{"date": "2024-01-05"},
	})
	if err == nil {
		assert.True(t, res.IsError)
	}
}

func TestEndToEnd_CategoriesResource(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "categories.json")

	t.Run("missing file is not found", func(t *testing.T) {
		_, session := connect(t, path, nil)

		_, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: CategoriesURI})
		assert.Error(t, err)
	})

	t.Run("file is returned verbatim and re-read", func(t *testing.T) {
		_, session := connect(t, path, nil)

		require.NoError(t, os.WriteFile(path, []byte(`{"food": ["groceries"]}`), 0o600))
		result, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: CategoriesURI})
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, `{"food": ["groceries"]}`, result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		require.NoError(t, os.WriteFile(path, []byte(`not even json`), 0o600))
		result, err = session.ReadResource(ctx, &mcp.ReadResourceParams{URI: CategoriesURI})
		require.NoError(t, err)
		assert.Equal(t, `not even json`, result.Contents[0].Text)
	})
}

func TestEndToEnd_CategoriesSubscription(t *testing.T) {
	ctx := context.Background()
	updates := make(chan string, 4)

	server, session := connect(t, filepath.Join(t.TempDir(), "categories.json"), &mcp.ClientOptions{
		ResourceUpdatedHandler: func(_ context.Context, req *mcp.ResourceUpdatedNotificationRequest) {
			updates <- req.Params.URI
		},
	})

	require.NoError(t, session.Subscribe(ctx, &mcp.SubscribeParams{URI: CategoriesURI}))
	require.NoError(t, server.NotifyCategoriesChanged(ctx))

	select {
	case uri := <-updates:
		assert.Equal(t, CategoriesURI, uri)
	case <-time.After(5 * time.Second):
		t.Fatal("no resource updated notification")
	}

	assert.Error(t, session.Subscribe(ctx, &mcp.SubscribeParams{URI: "expense://other"}))
}
