package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
)

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// journalStore implements driven.JournalStore.
type journalStore struct {
	store *Store
}

var _ driven.JournalStore = (*journalStore)(nil)

// Append records an entry.
func (s *journalStore) Append(ctx context.Context, entry domain.JournalEntry) error {
	if entry.ID == "" || !entry.Action.IsValid() {
		return fmt.Errorf("%w: journal entry needs an ID and a valid action", domain.ErrInvalidInput)
	}

	values := entry.Values
	if values == nil {
		values = map[string]string{}
	}
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshalling values: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO journal (id, action, spreadsheet_id, sheet_title, row_num, row_values, at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM journal))
	`, entry.ID, string(entry.Action), entry.SpreadsheetID, entry.SheetTitle, entry.RowNumber,
		string(valuesJSON), entry.At.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// List returns entries newest first. An empty spreadsheetID lists every
// spreadsheet; a limit of zero means no limit.
func (s *journalStore) List(ctx context.Context, spreadsheetID string, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, action, spreadsheet_id, sheet_title, row_num, row_values, at
		FROM journal
		WHERE (? = '' OR spreadsheet_id = ?)
		ORDER BY at DESC, seq DESC`
	args := []any{spreadsheetID, spreadsheetID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			e          domain.JournalEntry
			action     string
			valuesJSON string
			at         string
		)
		if err := rows.Scan(&e.ID, &action, &e.SpreadsheetID, &e.SheetTitle, &e.RowNumber, &valuesJSON, &at); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Action = domain.JournalAction(action)
		if err := json.Unmarshal([]byte(valuesJSON), &e.Values); err != nil {
			return nil, fmt.Errorf("unmarshalling values of %s: %w", e.ID, err)
		}
		if e.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parsing time of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return entries, nil
}

// Clear removes entries for a spreadsheet, or every entry.
func (s *journalStore) Clear(ctx context.Context, spreadsheetID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM journal WHERE (? = '' OR spreadsheet_id = ?)", spreadsheetID, spreadsheetID)
	if err != nil {
		return fmt.Errorf("clearing journal: %w", err)
	}
	return nil
}
