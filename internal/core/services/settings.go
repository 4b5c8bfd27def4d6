package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBackend           = "backend"
	KeyCredentialsFile   = "google.credentials_file"
	KeySpreadsheetID     = "google.spreadsheet_id"
	KeyRequestsPerSecond = "google.requests_per_second"
	KeyBurst             = "google.burst"
	KeyJournalEnabled    = "journal.enabled"
	KeyJournalBackend    = "journal.backend"
	KeyOutputFormat      = "output.format"
)

// SettingKeys lists every key accepted by Set, in display order.
var SettingKeys = []string{
	KeyBackend,
	KeyCredentialsFile,
	KeySpreadsheetID,
	KeyRequestsPerSecond,
	KeyBurst,
	KeyJournalEnabled,
	KeyJournalBackend,
	KeyOutputFormat,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		d := domain.DefaultSettings()
		return &d, nil
	}

	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Backend: s.getBackend(defaults.Backend),
		Google: domain.GoogleSettings{
			CredentialsFile:   s.getString(KeyCredentialsFile, defaults.Google.CredentialsFile),
			SpreadsheetID:     s.configStore.GetString(KeySpreadsheetID), // No default
			RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.Google.RequestsPerSecond),
			Burst:             s.getInt(KeyBurst, defaults.Google.Burst),
		},
		Journal: domain.JournalSettings{
			Enabled: s.getBool(KeyJournalEnabled, defaults.Journal.Enabled),
			Backend: s.getJournalBackend(defaults.Journal.Backend),
		},
		Output: domain.OutputSettings{
			Format: s.getOutputFormat(defaults.Output.Format),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key string
		val any
	}{
		{KeyBackend, string(settings.Backend)},
		{KeyCredentialsFile, settings.Google.CredentialsFile},
		{KeySpreadsheetID, settings.Google.SpreadsheetID},
		{KeyRequestsPerSecond, settings.Google.RequestsPerSecond},
		{KeyBurst, settings.Google.Burst},
		{KeyJournalEnabled, settings.Journal.Enabled},
		{KeyJournalBackend, string(settings.Journal.Backend)},
		{KeyOutputFormat, string(settings.Output.Format)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by key. The value is parsed according to
// the setting's type and the resulting settings must validate.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any = value
	switch key {
	case KeyBackend:
		settings.Backend = domain.Backend(value)
	case KeyCredentialsFile:
		settings.Google.CredentialsFile = value
	case KeySpreadsheetID:
		settings.Google.SpreadsheetID = value
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Google.RequestsPerSecond = f
		stored = f
	case KeyBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Google.Burst = n
		stored = n
	case KeyJournalEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Journal.Enabled = b
		stored = b
	case KeyJournalBackend:
		settings.Journal.Backend = domain.JournalBackend(value)
	case KeyOutputFormat:
		settings.Output.Format = domain.OutputFormat(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	return s.configStore.Set(key, stored)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.Backend) domain.Backend {
	b := domain.Backend(s.configStore.GetString(KeyBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getJournalBackend(defaultVal domain.JournalBackend) domain.JournalBackend {
	b := domain.JournalBackend(s.configStore.GetString(KeyJournalBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	f := domain.OutputFormat(s.configStore.GetString(KeyOutputFormat))
	if !f.IsValid() {
		return defaultVal
	}
	return f
}
