package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/services"
)

const testSpreadsheetID = "purchases-july-2019"

// mockJournalService is a mock implementation of driving.JournalService.
type mockJournalService struct {
	entries []domain.JournalEntry
	err     error
	limit   int
}

func (m *mockJournalService) List(_ context.Context, _ string, limit int) ([]domain.JournalEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockJournalService) Clear(_ context.Context, _ string) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.Settings) error { return m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }

func (m *mockSettingsService) ConfigPath() string { return "" }

// newTestServer builds a server over an in-memory spreadsheet backend.
func newTestServer(t *testing.T) (*Server, *memory.Spreadsheets, *memory.JournalStore) {
	t.Helper()

	backend := memory.NewSpreadsheets()
	backend.AddSheet(testSpreadsheetID, "July 2019",
		[]string{"Date", "Item", "Price"},
		[]string{"2019-07-01", "Coffee", "3.50"},
		[]string{"2019-07-02", "Keyboard", "202.39"},
		[]string{"2019-07-03", "Book", "18"},
	)
	backend.AddSheet(testSpreadsheetID, "Summary", []string{"Total"}, []string{"223.89"})
	backend.SetTitle(testSpreadsheetID, "Purchases")

	journal := memory.NewJournalStore()
	server, err := NewServer(&Ports{
		Sheet:   services.NewSheetService(backend, journal),
		Journal: services.NewJournalService(journal),
	})
	require.NoError(t, err)
	return server, backend, journal
}
