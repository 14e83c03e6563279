package domain

import "path/filepath"

// Default file names, resolved against the application home directory.
const (
	DefaultDatabaseFile   = "expenses.db"
	DefaultCategoriesFile = "categories.json"
	DefaultConfigFile     = "config.toml"
)

// Default HTTP transport limits.
const (
	DefaultHTTPRate  = 20.0
	DefaultHTTPBurst = 40
)

// AppSettings holds the resolved application configuration.
type AppSettings struct {
	Storage   StorageSettings
	Resources ResourceSettings
	MCP       MCPSettings
}

// StorageSettings configures the expense database.
type StorageSettings struct {
	// Database is the path of the single-file SQLite database.
	Database string
}

// ResourceSettings configures static resources.
type ResourceSettings struct {
	// Categories is the path of the advisory category list.
	Categories string
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// WatchCategories enables resource-updated notifications when the
	// category file changes.
	WatchCategories bool

	// HTTPRate is the sustained request rate allowed on the HTTP transport.
	HTTPRate float64

	// HTTPBurst is the burst size allowed on the HTTP transport.
	HTTPBurst int
}

// DefaultAppSettings returns the settings used when nothing is configured.
// All files live in home, the directory alongside the running program.
func DefaultAppSettings(home string) AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Database: filepath.Join(home, DefaultDatabaseFile),
		},
		Resources: ResourceSettings{
			Categories: filepath.Join(home, DefaultCategoriesFile),
		},
		MCP: MCPSettings{
			WatchCategories: true,
			HTTPRate:        DefaultHTTPRate,
			HTTPBurst:       DefaultHTTPBurst,
		},
	}
}
