package driving

import "github.com/custodia-labs/expense-tracker/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current settings, filling unset keys with defaults.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Set parses value for a known key and persists it.
	Set(key, value string) error

	// Keys lists the recognised configuration keys.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
