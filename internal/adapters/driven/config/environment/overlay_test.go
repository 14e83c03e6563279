package environment

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/expense-tracker/internal/adapters/driven/storage/memory"
)

func environOf(vars ...string) func() []string {
	return func() []string { return vars }
}

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewConfigStore_RequiresBase(t *testing.T) {
	_, err := NewConfigStore(nil, "")

	assert.Error(t, err)
}

func TestConfigStore_FallsBackToBase(t *testing.T) {
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("storage.database", "/data/expenses.db"))
	require.NoError(t, base.Set("mcp.http_burst", 5))

	store, err := newConfigStore(base, "", environOf("HOME=/root"))
	require.NoError(t, err)

	assert.Equal(t, "/data/expenses.db", store.GetString("storage.database"))
	assert.Equal(t, 5, store.GetInt("mcp.http_burst"))
	_, ok := store.Get("mcp.http_rate")
	assert.False(t, ok)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_EnvironmentOverrides(t *testing.T) {
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("storage.database", "/data/expenses.db"))
	require.NoError(t, base.Set("mcp.watch_categories", true))

	store, err := newConfigStore(base, "", environOf(
		"EXPENSE_TRACKER_DATABASE=/tmp/other.db",
		"EXPENSE_TRACKER_WATCH_CATEGORIES=false",
		"EXPENSE_TRACKER_HTTP_RATE=2.5",
		"EXPENSE_TRACKER_HTTP_BURST=3",
		"EXPENSE_TRACKER_CATEGORIES=",
		"UNRELATED=1",
	))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", store.GetString("storage.database"))
	assert.False(t, store.GetBool("mcp.watch_categories"))
	assert.InDelta(t, 2.5, store.GetFloat("mcp.http_rate"), 1e-9)
	assert.Equal(t, 3, store.GetInt("mcp.http_burst"))
	assert.InDelta(t, 3.0, store.GetFloat("mcp.http_burst"), 1e-9)

	_, ok := store.Get("resources.categories")
	assert.False(t, ok, "empty variables are ignored")
}

func TestConfigStore_Dotenv(t *testing.T) {
	path := writeDotenv(t, "EXPENSE_TRACKER_DATABASE=/from/file.db\nEXPENSE_TRACKER_HTTP_BURST=9\n")

	store, err := newConfigStore(memory.NewConfigStore(), path, environOf("EXPENSE_TRACKER_HTTP_BURST=1"))
	require.NoError(t, err)

	assert.Equal(t, "/from/file.db", store.GetString("storage.database"))
	assert.Equal(t, 1, store.GetInt("mcp.http_burst"), "process environment wins over the file")
}

func TestConfigStore_EmptyVariableDoesNotMaskDotenv(t *testing.T) {
	path := writeDotenv(t, "EXPENSE_TRACKER_HTTP_RATE=4\n")

	store, err := newConfigStore(memory.NewConfigStore(), path, environOf("EXPENSE_TRACKER_HTTP_RATE="))
	require.NoError(t, err)

	assert.InDelta(t, 4.0, store.GetFloat("mcp.http_rate"), 1e-9)
}

func TestVariables_Overrides(t *testing.T) {
	assert.Empty(t, variables{}.overrides(), "unset variables stay nil")

	rate, burst, watch := 0.0, 0, false
	got := variables{HTTPRate: &rate, HTTPBurst: &burst, WatchCategories: &watch}.overrides()

	assert.Equal(t, map[string]any{
		"mcp.http_rate":        0.0,
		"mcp.http_burst":       0,
		"mcp.watch_categories": false,
	}, got, "zero values set explicitly still override")
}

func TestConfigStore_MissingDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	_, err := newConfigStore(memory.NewConfigStore(), path, environOf())

	assert.NoError(t, err)
}

func TestConfigStore_InvalidValue(t *testing.T) {
	tests := []struct {
		name    string
		environ string
		want    string
	}{
		{name: "bool", environ: "EXPENSE_TRACKER_WATCH_CATEGORIES=maybe", want: "EXPENSE_TRACKER_WATCH_CATEGORIES"},
		{name: "float", environ: "EXPENSE_TRACKER_HTTP_RATE=fast", want: "EXPENSE_TRACKER_HTTP_RATE"},
		{name: "int", environ: "EXPENSE_TRACKER_HTTP_BURST=1.5", want: "EXPENSE_TRACKER_HTTP_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConfigStore(memory.NewConfigStore(), "", environOf(tt.environ))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.ErrorIs(t, err, strconv.ErrSyntax)
		})
	}
}

func TestConfigStore_SetWritesBase(t *testing.T) {
	base := memory.NewConfigStore()
	store, err := newConfigStore(base, "", environOf("EXPENSE_TRACKER_HTTP_BURST=3"))
	require.NoError(t, err)

	require.NoError(t, store.Set("mcp.http_burst", 10))

	assert.Equal(t, 10, base.GetInt("mcp.http_burst"))
	assert.Equal(t, 3, store.GetInt("mcp.http_burst"), "override still wins")
}

func TestConfigStore_Load(t *testing.T) {
	environ := []string{}
	store, err := newConfigStore(memory.NewConfigStore(), "", func() []string { return environ })
	require.NoError(t, err)
	assert.Empty(t, store.GetString("storage.database"))

	environ = []string{"EXPENSE_TRACKER_DATABASE=/late.db"}
	require.NoError(t, store.Load())

	assert.Equal(t, "/late.db", store.GetString("storage.database"))
}
