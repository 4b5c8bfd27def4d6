package cli

import (
	"bytes"
	"strings"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/core/services"
)

const testSpreadsheetID = "purchases-july-2019"

// testBackend exposes the in-memory stores behind the test services.
type testBackend struct {
	sheets  *memory.Spreadsheets
	journal *memory.JournalStore
	config  *memory.ConfigStore
}

// setupTestServices wires every service to in-memory stores. The returned
// cleanup restores the previous services and resets command flags.
func setupTestServices() (*testBackend, func()) {
	origSheet := sheetService
	origJournal := journalService
	origSettings := settingsService
	origConfig := configStore
	origSheetErr := sheetServiceErr
	origTerminal := stdinIsTerminal
	origConfirm := confirmInput
	origWizard := wizardInput

	b := &testBackend{
		sheets:  memory.NewSpreadsheets(),
		journal: memory.NewJournalStore(),
		config:  memory.NewConfigStore(),
	}
	b.sheets.AddSheet(testSpreadsheetID, "July 2019",
		[]string{"Date", "Item", "Price"},
		[]string{"2019-07-01", "Coffee", "3.50"},
		[]string{"2019-07-02", "Keyboard", "202.39"},
		[]string{"2019-07-05", "Book", "18"},
	)
	b.sheets.AddSheet(testSpreadsheetID, "Summary", []string{"Total"}, []string{"223.89"})
	b.sheets.SetTitle(testSpreadsheetID, "Purchases")
	_ = b.config.Set(services.KeySpreadsheetID, testSpreadsheetID)

	configStore = b.config
	settingsService = services.NewSettingsService(b.config)
	sheetService = services.NewSheetService(b.sheets, b.journal)
	journalService = services.NewJournalService(b.journal)
	sheetServiceErr = nil
	resetFlags()

	return b, func() {
		_ = teardown(nil, nil)
		sheetService = origSheet
		journalService = origJournal
		settingsService = origSettings
		configStore = origConfig
		sheetServiceErr = origSheetErr
		stdinIsTerminal = origTerminal
		confirmInput = origConfirm
		wizardInput = origWizard
		resetFlags()
	}
}

// resetFlags restores flag variables, which persist between executions.
func resetFlags() {
	verbose = false
	backendName = ""
	configDir = ""
	rowsSpreadsheet = ""
	rowsSheet = ""
	rowsOffset = 0
	rowsLimit = 0
	rowsOrderBy = ""
	rowsReverse = false
	rowsOutput = ""
	rowsYes = false
	rowsFormat = ""
	rowsQuery = ""
	journalLimit = 20
	journalSpreadsheet = ""
	tuiSheet = ""
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// lines splits output into trimmed non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			result = append(result, l)
		}
	}
	return result
}
