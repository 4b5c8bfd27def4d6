package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/services"
)

// wizardInput is where the init wizard reads answers from.
var wizardInput io.Reader = os.Stdin

// overrider is implemented by config stores that report environment overrides.
type overrider interface {
	Overrides(keys []string) map[string]string
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change sheetrows configuration.

Settings are read from config.toml in the configuration directory.
Environment variables such as SHEETROWS_GOOGLE_SPREADSHEET_ID override the
file, as do .env files in the working directory and the configuration
directory.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting and save it to config.toml.

Keys:
  ` + strings.Join(services.SettingKeys, "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long:  `Ask for the service-account key and default spreadsheet, then save them.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	overrides := map[string]string{}
	if o, ok := configStore.(overrider); ok {
		overrides = o.Overrides(services.SettingKeys)
	}
	show := func(key, label string, value any) {
		if env, ok := overrides[key]; ok {
			cmd.Printf("  %s: %v (from %s)\n", label, value, env)
			return
		}
		cmd.Printf("  %s: %v\n", label, value)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("File: %s\n", settingsService.ConfigPath())
	cmd.Println()

	show(services.KeyBackend, "Backend", settings.Backend)
	cmd.Println()

	cmd.Println("[Google]")
	show(services.KeyCredentialsFile, "Credentials file", settings.Google.CredentialsFile)
	spreadsheetID := settings.Google.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = "(not set)"
	}
	show(services.KeySpreadsheetID, "Spreadsheet ID", spreadsheetID)
	show(services.KeyRequestsPerSecond, "Requests per second", settings.Google.RequestsPerSecond)
	show(services.KeyBurst, "Burst", settings.Google.Burst)
	cmd.Println()

	cmd.Println("[Journal]")
	enabled := "no"
	if settings.Journal.Enabled {
		enabled = "yes"
	}
	show(services.KeyJournalEnabled, "Enabled", enabled)
	show(services.KeyJournalBackend, "Backend", settings.Journal.Backend.Description())
	cmd.Println()

	cmd.Println("[Output]")
	show(services.KeyOutputFormat, "Format", settings.Output.Format)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sheetrows config set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(wizardInput)

	cmd.Println("sheetrows setup")
	cmd.Println("===============")
	cmd.Println()
	cmd.Println("Create a service account in the Google Cloud console, enable the")
	cmd.Println("Sheets API and download its JSON key. Share each spreadsheet with the")
	cmd.Println("service account's email address.")
	cmd.Println()

	cmd.Printf("Service-account key file [%s]: ", settings.Google.CredentialsFile)
	if path := readLine(reader); path != "" {
		settings.Google.CredentialsFile = path
	}
	if _, err := os.Stat(settings.Google.CredentialsFile); err != nil {
		cmd.Printf("Warning: %s not found; commands will fail until it exists.\n", settings.Google.CredentialsFile)
	}

	cmd.Printf("Default spreadsheet ID [%s]: ", settings.Google.SpreadsheetID)
	if id := readLine(reader); id != "" {
		settings.Google.SpreadsheetID = id
	}

	cmd.Println()
	cmd.Println("Record row changes in the journal?")
	cmd.Println("  1. Yes, in a local database")
	cmd.Println("  2. Yes, for this process only")
	cmd.Println("  3. No")
	cmd.Print("Choice [1]: ")
	switch parseChoice(readLine(reader), 3, 1) {
	case 1:
		settings.Journal = domain.JournalSettings{Enabled: true, Backend: domain.JournalBackendSQLite}
	case 2:
		settings.Journal = domain.JournalSettings{Enabled: true, Backend: domain.JournalBackendMemory}
	default:
		settings.Journal.Enabled = false
	}

	settings.Backend = domain.BackendGoogle
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Printf("Saved to %s\n", settingsService.ConfigPath())
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	var choice int
	if _, err := fmt.Sscanf(input, "%d", &choice); err != nil {
		return defaultVal
	}
	if choice < 1 || choice > maxVal {
		return defaultVal
	}
	return choice
}
