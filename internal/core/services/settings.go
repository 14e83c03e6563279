package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/custodia-labs/expense-tracker/internal/core/domain"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
	"github.com/custodia-labs/expense-tracker/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDatabase        = "storage.database"
	keyCategories      = "resources.categories"
	keyWatchCategories = "mcp.watch_categories"
	keyHTTPRate        = "mcp.http_rate"
	keyHTTPBurst       = "mcp.http_burst"
)

type keyKind int

const (
	kindPath keyKind = iota
	kindBool
	kindFloat
	kindInt
)

var knownKeys = map[string]keyKind{
	keyDatabase:        kindPath,
	keyCategories:      kindPath,
	keyWatchCategories: kindBool,
	keyHTTPRate:        kindFloat,
	keyHTTPBurst:       kindInt,
}

// SettingsService resolves application settings from the config store.
// Relative paths are resolved against the home directory.
type SettingsService struct {
	configStore driven.ConfigStore
	home        string
}

// NewSettingsService creates a new settings service rooted at home.
func NewSettingsService(configStore driven.ConfigStore, home string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		home:        home,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Database: s.getPath(keyDatabase, defaults.Storage.Database),
		},
		Resources: domain.ResourceSettings{
			Categories: s.getPath(keyCategories, defaults.Resources.Categories),
		},
		MCP: domain.MCPSettings{
			WatchCategories: s.getBool(keyWatchCategories, defaults.MCP.WatchCategories),
			HTTPRate:        s.getFloat(keyHTTPRate, defaults.MCP.HTTPRate),
			HTTPBurst:       s.getInt(keyHTTPBurst, defaults.MCP.HTTPBurst),
		},
	}

	if settings.MCP.HTTPRate < 0 {
		return nil, fmt.Errorf("%s must not be negative", keyHTTPRate)
	}
	if settings.MCP.HTTPBurst < 0 {
		return nil, fmt.Errorf("%s must not be negative", keyHTTPBurst)
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings(s.home)
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	var parsed any
	switch kind {
	case kindPath:
		parsed = value
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects a boolean: %w", key, err)
		}
		parsed = b
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s expects a number: %w", key, err)
		}
		parsed = f
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, err)
		}
		parsed = n
	}

	return s.configStore.Set(key, parsed)
}

// Keys lists the recognised configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getPath(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	if !filepath.IsAbs(val) {
		return filepath.Join(s.home, val)
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
