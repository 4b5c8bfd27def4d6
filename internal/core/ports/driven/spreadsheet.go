package driven

import (
	"context"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// SpreadsheetClient is the boundary to the spreadsheet service.
// Implementations own authentication and query evaluation. Rows they
// return carry a save/delete capability (see domain.RowHandle).
type SpreadsheetClient interface {
	// Open fetches spreadsheet metadata, including its sheets.
	Open(ctx context.Context, spreadsheetID string) (*domain.Spreadsheet, error)

	// Rows fetches the data rows of a sheet, filtered, ordered and paged
	// according to opts.
	Rows(ctx context.Context, sheet domain.Sheet, opts domain.RowOptions) ([]*domain.Row, error)

	// AddRow appends a row built from data. Keys that are not column names
	// of the sheet are ignored.
	AddRow(ctx context.Context, sheet domain.Sheet, data map[string]string) (*domain.Row, error)
}
