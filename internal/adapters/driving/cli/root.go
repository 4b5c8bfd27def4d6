// Package cli provides the sheetrows command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sheetrows/internal/adapters/driven/sheets"
	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
	"github.com/custodia-labs/sheetrows/internal/core/services"
	"github.com/custodia-labs/sheetrows/internal/logger"
)

// skipSetup marks commands that run without services.
const skipSetup = "skip-setup"

// version is the build version, set by SetVersion.
var version = "dev"

// Global flags.
var (
	verbose     bool
	backendName string
	configDir   string
)

// Services used by commands. Set by setup or by tests.
var (
	sheetService    driving.SheetService
	journalService  driving.JournalService
	settingsService driving.SettingsService

	// configStore backs settingsService.
	configStore driven.ConfigStore

	// sheetServiceErr explains why sheetService is nil.
	sheetServiceErr error

	// closers release resources opened by setup.
	closers []func() error
)

// configWatcher is implemented by config stores that can report changes.
type configWatcher interface {
	Watch(ctx context.Context, onChange func(error)) error
}

var rootCmd = &cobra.Command{
	Use:   "sheetrows",
	Short: "Read and edit Google Sheets rows",
	Long: `sheetrows treats the first row of a Google spreadsheet as column names
and every row below it as a record you can list, query, update, create
and delete.

Authentication uses a service-account key (google.credentials_file,
client_secret.json by default). Share the spreadsheet with the service
account's email address before use.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "",
		"spreadsheet backend: google or memory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sheetrows)")
}

// Execute runs the root command and releases what setup opened, also
// when the command fails and cobra skips the post-run hook.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := teardown(nil, nil); err == nil {
		err = cerr
	}
	return err
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// setup wires services unless they are already configured.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipSetup] == "true" || settingsService != nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return wireServices(ctx)
}

// teardown releases resources opened by setup.
func teardown(_ *cobra.Command, _ []string) error {
	var errs []error
	for _, closeFn := range closers {
		errs = append(errs, closeFn())
	}
	closers = nil
	return errors.Join(errs...)
}

func wireServices(ctx context.Context) error {
	logger.Section("Setup")

	store, err := file.NewConfigStore(configDir, file.WithEnvFiles(".env"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store
	settingsService = services.NewSettingsService(store)
	logger.Debug("Config: %s", store.Path())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if backendName != "" {
		settings.Backend = domain.Backend(backendName)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	journal, err := openJournal(settings.Journal)
	if err != nil {
		return err
	}
	if journal != nil {
		journalService = services.NewJournalService(journal)
	}

	client, err := openClient(ctx, settings)
	if err != nil {
		logger.Debug("Sheet service unavailable: %v", err)
		sheetServiceErr = err
		return nil
	}
	sheetService = services.NewSheetService(client, journal)
	return nil
}

// openJournal opens the configured journal store, or returns nil when
// journaling is disabled.
func openJournal(cfg domain.JournalSettings) (driven.JournalStore, error) {
	if !cfg.Enabled {
		logger.Debug("Journal disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case domain.JournalBackendMemory:
		return memory.NewJournalStore(), nil
	default:
		dataDir := ""
		if configDir != "" {
			dataDir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		closers = append(closers, store.Close)
		logger.Debug("Journal: %s", store.Path())
		return store.JournalStore(), nil
	}
}

// openClient creates the spreadsheet client for the configured backend.
func openClient(ctx context.Context, settings *domain.Settings) (driven.SpreadsheetClient, error) {
	if settings.Backend == domain.BackendMemory {
		logger.Info("Using in-memory spreadsheets; changes are discarded on exit")
		return seedDemo(memory.NewSpreadsheets()), nil
	}

	client, err := sheets.NewClient(ctx, sheets.Options{
		CredentialsFile: settings.Google.CredentialsFile,
		RateLimit: sheets.RateLimitConfig{
			RequestsPerSecond: settings.Google.RequestsPerSecond,
			BurstSize:         settings.Google.Burst,
		},
	})
	if err != nil {
		return nil, err
	}
	if email := client.ServiceAccount(); email != "" {
		logger.Debug("Service account: %s", email)
	}
	return client, nil
}

// demoSpreadsheetID names the spreadsheet seeded into the memory backend.
const demoSpreadsheetID = "demo"

// seedDemo adds a small spreadsheet so the memory backend has something
// to browse.
func seedDemo(s *memory.Spreadsheets) *memory.Spreadsheets {
	s.AddSheet(demoSpreadsheetID, "Purchases",
		[]string{"Date", "Item", "Category", "Price"},
		[]string{"2019-07-01", "Coffee beans", "Groceries", "12.50"},
		[]string{"2019-07-02", "Mechanical keyboard", "Electronics", "202.39"},
		[]string{"2019-07-05", "Notebook", "Office", "4.20"},
		[]string{"2019-07-09", "Desk lamp", "Office", "39.99"},
	)
	s.AddSheet(demoSpreadsheetID, "Budget",
		[]string{"Category", "Limit"},
		[]string{"Groceries", "300"},
		[]string{"Electronics", "250"},
		[]string{"Office", "50"},
	)
	s.SetTitle(demoSpreadsheetID, "Demo purchases")
	return s
}

// requireSheetService returns an error when no sheet service is available.
func requireSheetService() error {
	if sheetService != nil {
		return nil
	}
	if sheetServiceErr != nil {
		return explain(sheetServiceErr)
	}
	return errors.New("sheet service not configured")
}

// explain adds a resolution hint to err when one applies.
func explain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthRequired) {
		return fmt.Errorf("%w\nhint: set google.credentials_file to a service-account key "+
			"(sheetrows config set google.credentials_file PATH)", err)
	}
	if errors.Is(err, domain.ErrSpreadsheetIDRequired) {
		return fmt.Errorf("%w\nhint: pass a spreadsheet ID or set google.spreadsheet_id", err)
	}
	if hint := sheets.Hint(err); hint != "" {
		return fmt.Errorf("%w\nhint: %s", err, hint)
	}
	return err
}

// resolveSpreadsheetID returns id, or the configured default when id is empty.
func resolveSpreadsheetID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return "", fmt.Errorf("reading settings: %w", err)
		}
		if settings.Google.SpreadsheetID != "" {
			return settings.Google.SpreadsheetID, nil
		}
	}
	return "", explain(domain.ErrSpreadsheetIDRequired)
}

// openSheet resolves a spreadsheet ID and returns the titled sheet, or the
// first sheet when title is empty.
func openSheet(ctx context.Context, spreadsheetID, title string) (*domain.Sheet, error) {
	id, err := resolveSpreadsheetID(spreadsheetID)
	if err != nil {
		return nil, err
	}
	var sheet *domain.Sheet
	if title == "" {
		sheet, err = sheetService.AccessSpreadsheet(ctx, id)
	} else {
		sheet, err = sheetService.AccessSheet(ctx, id, title)
	}
	if err != nil {
		return nil, explain(err)
	}
	return sheet, nil
}

// argOrEmpty returns args[i], or "" when absent.
func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
