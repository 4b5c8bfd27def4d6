package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

var (
	journalLimit       int
	journalSpreadsheet string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the history of row changes",
	Long: `The journal records every row created, updated or deleted through
sheetrows. Disable it with: sheetrows config set journal.enabled false`,
	RunE: runJournalList,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent row changes",
	RunE:  runJournalList,
}

var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove journal entries",
	RunE:  runJournalClear,
}

func init() {
	journalCmd.PersistentFlags().StringVarP(&journalSpreadsheet, "spreadsheet", "s", "",
		"only entries for this spreadsheet")
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of entries")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of entries")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalClearCmd)
	rootCmd.AddCommand(journalCmd)
}

func runJournalList(cmd *cobra.Command, _ []string) error {
	if journalService == nil {
		return errors.New("journal service not configured")
	}

	entries, err := journalService.List(context.Background(), journalSpreadsheet, journalLimit)
	if err != nil {
		return fmt.Errorf("failed to list journal: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No changes recorded.")
		return nil
	}

	for i := range entries {
		cmd.Println(formatEntry(&entries[i]))
	}
	return nil
}

func runJournalClear(cmd *cobra.Command, _ []string) error {
	if journalService == nil {
		return errors.New("journal service not configured")
	}

	if err := journalService.Clear(context.Background(), journalSpreadsheet); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}

	if journalSpreadsheet != "" {
		cmd.Printf("Cleared journal for %s.\n", journalSpreadsheet)
	} else {
		cmd.Println("Cleared journal.")
	}
	return nil
}

// formatEntry renders an entry as
// "2019-07-02 10:04  update  Purchases!5  price=202.39".
func formatEntry(e *domain.JournalEntry) string {
	target := e.SheetTitle
	if e.RowNumber > 0 {
		target = fmt.Sprintf("%s!%d", e.SheetTitle, e.RowNumber)
	}

	pairs := make([]string, 0, len(e.Values))
	for _, k := range domain.SortedKeys(e.Values) {
		pairs = append(pairs, k+"="+e.Values[k])
	}

	return fmt.Sprintf("%s  %-6s  %s  %s",
		e.At.Local().Format("2006-01-02 15:04"), e.Action, target, strings.Join(pairs, " "))
}
