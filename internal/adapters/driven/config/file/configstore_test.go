package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_EmptyDir(t *testing.T) {
	store, err := NewConfigStore("")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("storage.database")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.NoFileExists(t, store.Path())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("storage.database")
	assert.False(t, ok)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[storage]
database = "/srv/expenses.db"

[resources]
categories = "categories.json"

[mcp]
watch_categories = false
http_rate = 2.5
http_burst = 10
`
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/expenses.db", store.GetString("storage.database"))
	assert.Equal(t, "categories.json", store.GetString("resources.categories"))
	assert.False(t, store.GetBool("mcp.watch_categories"))
	_, ok := store.Get("mcp.watch_categories")
	assert.True(t, ok)
	assert.Equal(t, 2.5, store.GetFloat("mcp.http_rate"))
	assert.Equal(t, 10, store.GetInt("mcp.http_burst"))
	assert.Equal(t, 10.0, store.GetFloat("mcp.http_burst"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("name", "value"))

	assert.Equal(t, 0, store.GetInt("name"))
	assert.Equal(t, 0.0, store.GetFloat("name"))
	assert.False(t, store.GetBool("name"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("storage.database", "/data/expenses.db"))
	require.NoError(t, store1.Set("mcp.http_burst", int64(5)))
	require.NoError(t, store1.Set("mcp.watch_categories", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/data/expenses.db", store2.GetString("storage.database"))
	assert.Equal(t, 5, store2.GetInt("mcp.http_burst"))
	assert.True(t, store2.GetBool("mcp.watch_categories"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.database", "expenses.db"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
	assert.NotContains(t, string(data), `"storage.database"`)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.database", "x.db"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "mcp.key" + string(rune('0'+id))
			_ = store.Set(key, int64(id))
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestFlattenUnflatten(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{"database": "a.db"},
		"mcp":     map[string]any{"http_burst": int64(3)},
		"top":     true,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"storage.database": "a.db",
		"mcp.http_burst":   int64(3),
		"top":              true,
	}, flat)

	assert.Equal(t, nested, unflattenMap(flat))
}

func TestUnflattenMap_ValueShadowsTable(t *testing.T) {
	result := unflattenMap(map[string]any{
		"mcp": "scalar",
	})
	assert.Equal(t, map[string]any{"mcp": "scalar"}, result)
}
