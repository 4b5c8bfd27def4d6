package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/export"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// Rows command flags.
var (
	rowsSpreadsheet string
	rowsSheet       string
	rowsOffset      int
	rowsLimit       int
	rowsOrderBy     string
	rowsReverse     bool
	rowsOutput      string
	rowsYes         bool
	rowsFormat      string
	rowsQuery       string
)

// stdinIsTerminal reports whether confirmation prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmInput is where confirmation answers are read from.
var confirmInput io.Reader = os.Stdin

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Read and edit sheet rows",
	Long: `Row commands treat the first row of a sheet as column names. Column
names are matched case-insensitively and without surrounding spaces, so
a "Unit Price" header is addressed as "unit price".

Row numbers are sheet row numbers: the first data row is row 2.`,
}

var rowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every row of a sheet",
	Args:  cobra.NoArgs,
	RunE:  runRowsList,
}

var rowsQueryCmd = &cobra.Command{
	Use:   "query <query>",
	Short: "List rows matching a structured query",
	Long: `Lists the rows matching a structured query.

Queries compare columns with literals and combine comparisons with
and, or, not and parentheses. Strings are quoted.

Examples:
  sheetrows rows query 'price = 202.39'
  sheetrows rows query 'price > 10 and item != "Coffee"'`,
	Args: cobra.ExactArgs(1),
	RunE: runRowsQuery,
}

var rowsUpdateCmd = &cobra.Command{
	Use:   "update <row> <column=value>...",
	Short: "Update cells of a row",
	Long: `Copies each value onto the row when the row has a column of that name,
then saves the row. Unknown columns are reported and skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRowsUpdate,
}

var rowsCreateCmd = &cobra.Command{
	Use:   "create <column=value>...",
	Short: "Append a row",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRowsCreate,
}

var rowsDeleteCmd = &cobra.Command{
	Use:   "delete <row>",
	Short: "Delete a row",
	Args:  cobra.ExactArgs(1),
	RunE:  runRowsDelete,
}

var rowsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write rows to a file",
	Long: `Writes the rows of a sheet to a file. The format is taken from --format,
or from the file extension (.csv, .json, .yaml, .xlsx, .txt).`,
	Args: cobra.ExactArgs(1),
	RunE: runRowsExport,
}

func init() {
	rowsCmd.PersistentFlags().StringVarP(&rowsSpreadsheet, "spreadsheet", "s", "",
		"spreadsheet ID (default google.spreadsheet_id)")
	rowsCmd.PersistentFlags().StringVar(&rowsSheet, "sheet", "", "sheet title (default first sheet)")

	for _, c := range []*cobra.Command{rowsListCmd, rowsQueryCmd, rowsExportCmd} {
		c.Flags().IntVar(&rowsOffset, "offset", 0, "skip this many rows")
		c.Flags().IntVarP(&rowsLimit, "limit", "n", 0, "maximum number of rows (0 = all)")
		c.Flags().StringVar(&rowsOrderBy, "order-by", "", "sort by column")
		c.Flags().BoolVar(&rowsReverse, "reverse", false, "reverse the order")
	}
	rowsListCmd.Flags().StringVarP(&rowsOutput, "output", "o", "", "output format: text, csv, json or yaml")
	rowsQueryCmd.Flags().StringVarP(&rowsOutput, "output", "o", "", "output format: text, csv, json or yaml")
	rowsExportCmd.Flags().StringVarP(&rowsFormat, "format", "f", "", "file format (default from extension)")
	rowsExportCmd.Flags().StringVarP(&rowsQuery, "query", "q", "", "only export rows matching this query")
	rowsDeleteCmd.Flags().BoolVarP(&rowsYes, "yes", "y", false, "do not ask for confirmation")

	rowsCmd.AddCommand(rowsListCmd)
	rowsCmd.AddCommand(rowsQueryCmd)
	rowsCmd.AddCommand(rowsUpdateCmd)
	rowsCmd.AddCommand(rowsCreateCmd)
	rowsCmd.AddCommand(rowsDeleteCmd)
	rowsCmd.AddCommand(rowsExportCmd)
	rootCmd.AddCommand(rowsCmd)
}

func runRowsList(cmd *cobra.Command, _ []string) error {
	return listAndPrint(cmd, "")
}

func runRowsQuery(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	return listAndPrint(cmd, query)
}

func listAndPrint(cmd *cobra.Command, query string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	format, err := outputFormat(rowsOutput)
	if err != nil {
		return err
	}
	if format == domain.OutputXLSX {
		return fmt.Errorf("%w: xlsx output needs a file, use rows export", domain.ErrUnsupportedFormat)
	}

	ctx := context.Background()
	sheet, err := openSheet(ctx, rowsSpreadsheet, rowsSheet)
	if err != nil {
		return err
	}

	rows, err := sheetService.ListRows(ctx, sheet, rowOptions(query))
	if err != nil {
		return fmt.Errorf("listing rows: %w", explain(err))
	}

	if format == domain.OutputText && len(rows) == 0 {
		cmd.Println("No rows found.")
		return nil
	}
	return export.Write(cmd.OutOrStdout(), format, nil, rows)
}

func runRowsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	number, err := parseRowNumber(args[0])
	if err != nil {
		return err
	}
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	ctx := context.Background()
	sheet, err := openSheet(ctx, rowsSpreadsheet, rowsSheet)
	if err != nil {
		return err
	}
	row, err := sheetService.GetRow(ctx, sheet, number)
	if err != nil {
		return fmt.Errorf("reading row %d: %w", number, explain(err))
	}

	for _, key := range domain.SortedKeys(values) {
		if !row.Has(key) && !row.Has(sheetquery.NormalizeColumn(key)) {
			cmd.PrintErrf("Skipping unknown column %q\n", key)
		}
	}

	if err := sheetService.UpdateRow(ctx, row, values); err != nil {
		return fmt.Errorf("updating row %d: %w", number, explain(err))
	}

	cmd.Printf("Updated row %d of %s.\n", row.Number, sheet.Title)
	return nil
}

func runRowsCreate(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	values, err := parseAssignments(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sheet, err := openSheet(ctx, rowsSpreadsheet, rowsSheet)
	if err != nil {
		return err
	}
	if err := sheetService.CreateRow(ctx, sheet, values); err != nil {
		return fmt.Errorf("creating row: %w", explain(err))
	}

	cmd.Printf("Added row to %s.\n", sheet.Title)
	return nil
}

func runRowsDelete(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	number, err := parseRowNumber(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	sheet, err := openSheet(ctx, rowsSpreadsheet, rowsSheet)
	if err != nil {
		return err
	}
	row, err := sheetService.GetRow(ctx, sheet, number)
	if err != nil {
		return fmt.Errorf("reading row %d: %w", number, explain(err))
	}

	if !rowsYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete without confirmation; pass --yes")
		}
		cmd.Printf("Delete row %d (%s)? [y/N] ", row.Number, strings.Join(row.OrderedValues(), ", "))
		if !confirmed(confirmInput) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if !row.CanDelete() {
		cmd.Printf("Row %d cannot be deleted.\n", row.Number)
		return nil
	}
	if err := sheetService.DeleteRow(ctx, row); err != nil {
		return fmt.Errorf("deleting row %d: %w", number, explain(err))
	}

	cmd.Printf("Deleted row %d of %s.\n", row.Number, sheet.Title)
	return nil
}

func runRowsExport(cmd *cobra.Command, args []string) error {
	if err := requireSheetService(); err != nil {
		return err
	}

	path := args[0]
	format := domain.OutputFormat(strings.ToLower(rowsFormat))
	if format == "" {
		format = formatFromExtension(path)
	}
	if !format.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	ctx := context.Background()
	sheet, err := openSheet(ctx, rowsSpreadsheet, rowsSheet)
	if err != nil {
		return err
	}
	rows, err := sheetService.ListRows(ctx, sheet, rowOptions(strings.TrimSpace(rowsQuery)))
	if err != nil {
		return fmt.Errorf("listing rows: %w", explain(err))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.Write(f, format, nil, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	cmd.Printf("Exported %d rows to %s.\n", len(rows), path)
	return nil
}

func rowOptions(query string) domain.RowOptions {
	return domain.RowOptions{
		Offset:  rowsOffset,
		Limit:   rowsLimit,
		OrderBy: rowsOrderBy,
		Reverse: rowsReverse,
		Query:   query,
	}
}

// outputFormat returns the requested format, or the configured default.
func outputFormat(requested string) (domain.OutputFormat, error) {
	format := domain.OutputFormat(strings.ToLower(requested))
	if format == "" {
		format = domain.OutputText
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				format = settings.Output.Format
			}
		}
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, requested)
	}
	return format, nil
}

func formatFromExtension(path string) domain.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return domain.OutputCSV
	case ".json":
		return domain.OutputJSON
	case ".yaml", ".yml":
		return domain.OutputYAML
	case ".xlsx":
		return domain.OutputXLSX
	default:
		return domain.OutputText
	}
}

// parseRowNumber parses a sheet row number. The header row is rejected.
func parseRowNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: row %q is not a number", domain.ErrInvalidInput, s)
	}
	if n <= domain.HeaderRowNumber {
		return 0, fmt.Errorf("%w: row %d is not a data row (data starts at row %d)",
			domain.ErrInvalidInput, n, domain.HeaderRowNumber+1)
	}
	return n, nil
}

// parseAssignments parses column=value arguments.
func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		column, value, ok := strings.Cut(arg, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return nil, fmt.Errorf("%w: expected column=value, got %q", domain.ErrInvalidInput, arg)
		}
		values[column] = value
	}
	return values, nil
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
