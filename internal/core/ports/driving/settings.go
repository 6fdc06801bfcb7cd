package driving

import "github.com/custodia-labs/quizctl/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults
	// for missing or invalid values.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Unset removes a persisted setting so its default applies again.
	Unset(key string) error

	// Keys returns the settable keys in display order.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
