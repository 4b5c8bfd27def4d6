package domain

import "fmt"

const unknownDescription = "Unknown"

// Default settings values.
const (
	// DefaultCredentialsFile is the service-account key file looked up
	// in the working directory when none is configured.
	DefaultCredentialsFile = "client_secret.json"

	// DefaultRequestsPerSecond stays well below the per-user Sheets quota.
	DefaultRequestsPerSecond = 1.0

	// DefaultBurst is the default rate limiter burst size.
	DefaultBurst = 5
)

// Backend identifies the spreadsheet backend used by the application.
type Backend string

// Available backends.
const (
	// BackendGoogle talks to the Google Sheets API.
	BackendGoogle Backend = "google"

	// BackendMemory keeps spreadsheets in process memory.
	BackendMemory Backend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	return b == BackendGoogle || b == BackendMemory
}

// JournalBackend identifies where journal entries are stored.
type JournalBackend string

// Available journal backends.
const (
	// JournalBackendSQLite stores the journal in a local SQLite database.
	JournalBackendSQLite JournalBackend = "sqlite"

	// JournalBackendMemory keeps the journal for the lifetime of the process.
	JournalBackendMemory JournalBackend = "memory"
)

// IsValid returns true if the journal backend is recognised.
func (b JournalBackend) IsValid() bool {
	return b == JournalBackendSQLite || b == JournalBackendMemory
}

// Description returns a human-readable description of the backend.
func (b JournalBackend) Description() string {
	switch b {
	case JournalBackendSQLite:
		return "SQLite (persistent)"
	case JournalBackendMemory:
		return "Memory (this process only)"
	default:
		return unknownDescription
	}
}

// OutputFormat identifies how rows are rendered.
type OutputFormat string

// Available output formats.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputCSV  OutputFormat = "csv"
	OutputXLSX OutputFormat = "xlsx"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML, OutputCSV, OutputXLSX:
		return true
	default:
		return false
	}
}

// GoogleSettings configures access to the Google Sheets service.
type GoogleSettings struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string

	// SpreadsheetID is the default spreadsheet for commands that take one.
	SpreadsheetID string

	// RequestsPerSecond is the client-side sustained request rate.
	RequestsPerSecond float64

	// Burst is the client-side burst size.
	Burst int
}

// JournalSettings configures the mutation journal.
type JournalSettings struct {
	Enabled bool
	Backend JournalBackend
}

// OutputSettings configures CLI output.
type OutputSettings struct {
	Format OutputFormat
}

// Settings is the typed application configuration.
type Settings struct {
	Backend Backend
	Google  GoogleSettings
	Journal JournalSettings
	Output  OutputSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendGoogle,
		Google: GoogleSettings{
			CredentialsFile:   DefaultCredentialsFile,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		Journal: JournalSettings{
			Enabled: true,
			Backend: JournalBackendSQLite,
		},
		Output: OutputSettings{
			Format: OutputText,
		},
	}
}

// Validate checks the settings for invalid values.
func (s Settings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: backend %q", ErrInvalidInput, s.Backend)
	}
	if s.Google.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidInput)
	}
	if s.Google.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive", ErrInvalidInput)
	}
	if s.Journal.Enabled && !s.Journal.Backend.IsValid() {
		return fmt.Errorf("%w: journal backend %q", ErrInvalidInput, s.Journal.Backend)
	}
	if !s.Output.Format.IsValid() {
		return fmt.Errorf("%w: output format %q", ErrInvalidInput, s.Output.Format)
	}
	return nil
}
