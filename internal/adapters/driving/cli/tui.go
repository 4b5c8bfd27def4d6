package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sheetrows/internal/logger"
)

var tuiSheet string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [spreadsheet-id]",
	Short: "Browse a sheet in the terminal",
	Long: `Launch an interactive table of a sheet's rows.

Controls:
  ↑/k, ↓/j - Move between rows
  /        - Query rows
  Enter    - Apply query
  Esc      - Clear query / Cancel
  d        - Delete the selected row
  r        - Reload
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSheet, "sheet", "", "sheet title (default first sheet)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := requireSheetService(); err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{
		Sheet:    sheetService,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.WithContext(ctx).WithSheet(argOrEmpty(args, 0), tuiSheet)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if w, ok := configStore.(configWatcher); ok {
		if err := w.Watch(ctx, func(err error) {
			p.Send(messages.ConfigReloaded{Err: err})
		}); err != nil {
			logger.Debug("Config watcher unavailable: %v", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
