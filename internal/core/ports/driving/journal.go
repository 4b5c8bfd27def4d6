package driving

import (
	"context"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// JournalService reads the history of row mutations.
type JournalService interface {
	// List returns entries newest first, optionally for one spreadsheet.
	List(ctx context.Context, spreadsheetID string, limit int) ([]domain.JournalEntry, error)

	// Clear removes entries, optionally for one spreadsheet.
	Clear(ctx context.Context, spreadsheetID string) error
}
