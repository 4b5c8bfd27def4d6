package driven

import (
	"context"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// JournalStore persists the history of row mutations.
type JournalStore interface {
	// Append records an entry.
	Append(ctx context.Context, entry domain.JournalEntry) error

	// List returns entries newest first. An empty spreadsheetID lists
	// every spreadsheet. A limit of zero means no limit.
	List(ctx context.Context, spreadsheetID string, limit int) ([]domain.JournalEntry, error)

	// Clear removes the entries for a spreadsheet, or every entry if
	// spreadsheetID is empty.
	Clear(ctx context.Context, spreadsheetID string) error
}
