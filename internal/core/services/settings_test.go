package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Empty(t, service.ConfigPath())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyBackend, "memory")
	_ = store.Set(KeySpreadsheetID, "abc123")
	_ = store.Set(KeyRequestsPerSecond, 2.5)
	_ = store.Set(KeyBurst, 10)
	_ = store.Set(KeyJournalEnabled, false)
	_ = store.Set(KeyOutputFormat, "json")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendMemory, settings.Backend)
	assert.Equal(t, "abc123", settings.Google.SpreadsheetID)
	assert.InDelta(t, 2.5, settings.Google.RequestsPerSecond, 1e-9)
	assert.Equal(t, 10, settings.Google.Burst)
	assert.False(t, settings.Journal.Enabled)
	assert.Equal(t, domain.OutputJSON, settings.Output.Format)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyBackend, "excel")
	_ = store.Set(KeyJournalBackend, "postgres")
	_ = store.Set(KeyOutputFormat, "pdf")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendGoogle, settings.Backend)
	assert.Equal(t, domain.JournalBackendSQLite, settings.Journal.Backend)
	assert.Equal(t, domain.OutputText, settings.Output.Format)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultSettings()
	settings.Backend = domain.BackendMemory
	settings.Google.SpreadsheetID = "xyz"
	settings.Journal.Backend = domain.JournalBackendMemory

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "memory", store.GetString(KeyBackend))
	assert.Equal(t, "xyz", store.GetString(KeySpreadsheetID))
	assert.Equal(t, "memory", store.GetString(KeyJournalBackend))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *loaded)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultSettings()
	settings.Google.Burst = 0

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Save_NilStore(t *testing.T) {
	settings := domain.DefaultSettings()
	assert.ErrorIs(t, NewSettingsService(nil).Save(&settings), domain.ErrNotImplemented)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{KeyBackend, "memory", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.BackendMemory, s.Backend)
		}},
		{KeyCredentialsFile, "/etc/key.json", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "/etc/key.json", s.Google.CredentialsFile)
		}},
		{KeySpreadsheetID, "sheet-1", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "sheet-1", s.Google.SpreadsheetID)
		}},
		{KeyRequestsPerSecond, "0.5", func(t *testing.T, s *domain.Settings) {
			assert.InDelta(t, 0.5, s.Google.RequestsPerSecond, 1e-9)
		}},
		{KeyBurst, "3", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 3, s.Google.Burst)
		}},
		{KeyJournalEnabled, "false", func(t *testing.T, s *domain.Settings) {
			assert.False(t, s.Journal.Enabled)
		}},
		{KeyJournalBackend, "memory", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.JournalBackendMemory, s.Journal.Backend)
		}},
		{KeyOutputFormat, "csv", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.OutputCSV, s.Output.Format)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"invalid backend", KeyBackend, "excel"},
		{"non-numeric rate", KeyRequestsPerSecond, "fast"},
		{"zero rate", KeyRequestsPerSecond, "0"},
		{"non-integer burst", KeyBurst, "1.5"},
		{"non-bool journal", KeyJournalEnabled, "maybe"},
		{"invalid format", KeyOutputFormat, "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(nil)
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestSettingsService_ConfigPath(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingKeys_AllSettable(t *testing.T) {
	defaults := domain.DefaultSettings()
	values := map[string]string{
		KeyBackend:           string(defaults.Backend),
		KeyCredentialsFile:   defaults.Google.CredentialsFile,
		KeySpreadsheetID:     "",
		KeyRequestsPerSecond: "1",
		KeyBurst:             "5",
		KeyJournalEnabled:    "true",
		KeyJournalBackend:    string(defaults.Journal.Backend),
		KeyOutputFormat:      string(defaults.Output.Format),
	}
	service := NewSettingsService(memory.NewConfigStore())
	for _, key := range SettingKeys {
		v, ok := values[key]
		require.True(t, ok, key)
		assert.NoError(t, service.Set(key, v), key)
	}
}
