package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Inspect spreadsheets",
}

var sheetInfoCmd = &cobra.Command{
	Use:   "info [spreadsheet-id]",
	Short: "Show the first sheet of a spreadsheet",
	Long: `Opens a spreadsheet and shows its first sheet, the one rows commands
use when --sheet is not given.

The spreadsheet ID is the long identifier in the spreadsheet's URL. When
omitted, google.spreadsheet_id from the configuration is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSheetInfo,
}

var sheetListCmd = &cobra.Command{
	Use:   "list [spreadsheet-id]",
	Short: "List the sheets of a spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSheetList,
}

func init() {
	sheetCmd.AddCommand(sheetInfoCmd)
	sheetCmd.AddCommand(sheetListCmd)
	rootCmd.AddCommand(sheetCmd)
}

func runSheetInfo(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	sheet, err := openSheet(context.Background(), argOrEmpty(args, 0), "")
	if err != nil {
		return err
	}

	cmd.Printf("Title:       %s\n", sheet.Title)
	cmd.Printf("Spreadsheet: %s\n", sheet.SpreadsheetID)
	cmd.Printf("Sheet ID:    %d\n", sheet.ID)
	cmd.Printf("Size:        %d rows x %d columns\n", sheet.RowCount, sheet.ColumnCount)
	cmd.Printf("URL:         %s\n", sheet.URL)
	return nil
}

func runSheetList(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	id, err := resolveSpreadsheetID(argOrEmpty(args, 0))
	if err != nil {
		return err
	}

	spreadsheet, err := sheetService.Spreadsheet(context.Background(), id)
	if err != nil {
		return fmt.Errorf("opening spreadsheet: %w", explain(err))
	}

	cmd.Printf("%s\n\n", spreadsheet.Title)
	if len(spreadsheet.Sheets) == 0 {
		cmd.Println("No sheets.")
		return nil
	}
	for i := range spreadsheet.Sheets {
		sheet := spreadsheet.Sheets[i]
		marker := " "
		if i == 0 {
			marker = "*"
		}
		cmd.Printf("  %s [%d] %s (%d rows)\n", marker, sheet.Index, sheet.Title, sheet.RowCount)
	}
	return nil
}
