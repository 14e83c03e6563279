// Package environment overlays EXPENSE_TRACKER_* variables, optionally read
// from a .env file, on top of another config store.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/expense-tracker/internal/core/ports/driven"
)

// Prefix is prepended to every variable name.
const Prefix = "EXPENSE_TRACKER_"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// variables holds the recognised overrides. A nil field means the variable
// is unset or empty.
type variables struct {
	Database        *string  `env:"DATABASE"`
	Categories      *string  `env:"CATEGORIES"`
	WatchCategories *bool    `env:"WATCH_CATEGORIES"`
	HTTPRate        *float64 `env:"HTTP_RATE"`
	HTTPBurst       *int     `env:"HTTP_BURST"`
}

// overrides maps every set variable to the config key it replaces.
func (v variables) overrides() map[string]any {
	out := make(map[string]any)
	if v.Database != nil {
		out["storage.database"] = *v.Database
	}
	if v.Categories != nil {
		out["resources.categories"] = *v.Categories
	}
	if v.WatchCategories != nil {
		out["mcp.watch_categories"] = *v.WatchCategories
	}
	if v.HTTPRate != nil {
		out["mcp.http_rate"] = *v.HTTPRate
	}
	if v.HTTPBurst != nil {
		out["mcp.http_burst"] = *v.HTTPBurst
	}
	return out
}

// variableError names the offending variable instead of the struct field.
func variableError(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}
	for _, e := range agg.Errors {
		var parseErr env.ParseError
		if !errors.As(e, &parseErr) {
			continue
		}
		name := parseErr.Name
		if field, ok := reflect.TypeOf(variables{}).FieldByName(parseErr.Name); ok {
			name = field.Tag.Get("env")
		}
		return fmt.Errorf("%s%s: %w", Prefix, name, parseErr.Err)
	}
	return err
}

// ConfigStore reads overrides from the environment and falls back to base.
// Set always writes to base, so an override keeps winning until the
// variable is unset.
type ConfigStore struct {
	base       driven.ConfigStore
	dotenvPath string
	lookup     func() []string

	mu        sync.RWMutex
	overrides map[string]any
}

// NewConfigStore creates an overlay on base and loads it. dotenvPath may
// be empty or point at a missing file. Variables already set in the
// process environment take precedence over the file.
func NewConfigStore(base driven.ConfigStore, dotenvPath string) (*ConfigStore, error) {
	return newConfigStore(base, dotenvPath, os.Environ)
}

func newConfigStore(base driven.ConfigStore, dotenvPath string, lookup func() []string) (*ConfigStore, error) {
	if base == nil {
		return nil, errors.New("base config store is required")
	}
	s := &ConfigStore{
		base:       base,
		dotenvPath: dotenvPath,
		lookup:     lookup,
		overrides:  make(map[string]any),
	}
	if err := s.loadOverrides(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reloads base and the environment.
func (s *ConfigStore) Load() error {
	if err := s.base.Load(); err != nil {
		return err
	}
	return s.loadOverrides()
}

func (s *ConfigStore) loadOverrides() error {
	environ, err := s.environ()
	if err != nil {
		return err
	}

	var vars variables
	if err := env.Parse(&vars, env.Options{Prefix: Prefix, Environment: environ}); err != nil {
		return fmt.Errorf("parsing environment: %w", variableError(err))
	}
	overrides := vars.overrides()

	s.mu.Lock()
	s.overrides = overrides
	s.mu.Unlock()
	return nil
}

// environ merges the .env file with the process environment. Empty values
// are dropped so they neither override base nor mask the file.
func (s *ConfigStore) environ() (map[string]string, error) {
	merged := make(map[string]string)
	if s.dotenvPath != "" {
		fileVars, err := godotenv.Read(s.dotenvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", s.dotenvPath, err)
		default:
			for k, v := range fileVars {
				if v != "" {
					merged[k] = v
				}
			}
		}
	}

	for _, kv := range s.lookup() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && v != "" && strings.HasPrefix(k, Prefix) {
			merged[k] = v
		}
	}
	return merged, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	val, ok := s.overrides[key]
	s.mu.RUnlock()
	if ok {
		return val, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if val, ok := s.override(key); ok {
		str, _ := val.(string)
		return str
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	if val, ok := s.override(key); ok {
		n, _ := val.(int)
		return n
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	if val, ok := s.override(key); ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		return 0
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	if val, ok := s.override(key); ok {
		b, _ := val.(bool)
		return b
	}
	return s.base.GetBool(key)
}

// Set stores a value in the base store.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Path returns the base configuration file path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}

func (s *ConfigStore) override(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.overrides[key]
	return val, ok
}
