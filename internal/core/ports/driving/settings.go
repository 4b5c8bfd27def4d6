package driving

import "github.com/custodia-labs/sheetrows/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its dotted key (e.g. "google.burst").
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
