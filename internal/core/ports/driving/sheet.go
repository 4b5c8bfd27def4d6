package driving

import (
	"context"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// SheetService exposes row-level operations on a spreadsheet.
// Errors from the spreadsheet service are returned unmodified.
type SheetService interface {
	// AccessSpreadsheet opens a spreadsheet and returns its first sheet.
	AccessSpreadsheet(ctx context.Context, spreadsheetID string) (*domain.Sheet, error)

	// AccessSheet opens a spreadsheet and returns the sheet with the given title.
	AccessSheet(ctx context.Context, spreadsheetID, title string) (*domain.Sheet, error)

	// Spreadsheet returns spreadsheet metadata including every sheet.
	Spreadsheet(ctx context.Context, spreadsheetID string) (*domain.Spreadsheet, error)

	// GetRows returns every data row of a sheet.
	GetRows(ctx context.Context, sheet *domain.Sheet) ([]*domain.Row, error)

	// GetQueriedRows returns the rows matching a structured query.
	GetQueriedRows(ctx context.Context, sheet *domain.Sheet, query string) ([]*domain.Row, error)

	// ListRows returns rows using the full set of fetch options.
	ListRows(ctx context.Context, sheet *domain.Sheet, opts domain.RowOptions) ([]*domain.Row, error)

	// GetRow returns the row at a 1-based sheet row number.
	GetRow(ctx context.Context, sheet *domain.Sheet, number int) (*domain.Row, error)

	// UpdateRow copies each value onto the row when the row already has a
	// column of that name, then saves the row.
	UpdateRow(ctx context.Context, row *domain.Row, values map[string]string) error

	// CreateRow appends a row built from data.
	CreateRow(ctx context.Context, sheet *domain.Sheet, data map[string]string) error

	// DeleteRow deletes the row if it carries a delete capability.
	// Rows without one are left alone.
	DeleteRow(ctx context.Context, row *domain.Row) error
}
