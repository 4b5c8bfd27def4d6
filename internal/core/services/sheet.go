package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
	"github.com/custodia-labs/sheetrows/internal/logger"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// Ensure SheetService implements the interface.
var _ driving.SheetService = (*SheetService)(nil)

// SheetService forwards row operations to a spreadsheet client and records
// successful mutations in an optional journal.
type SheetService struct {
	client  driven.SpreadsheetClient
	journal driven.JournalStore
	now     func() time.Time
}

// NewSheetService creates a new sheet service. journal may be nil.
func NewSheetService(client driven.SpreadsheetClient, journal driven.JournalStore) *SheetService {
	return &SheetService{
		client:  client,
		journal: journal,
		now:     time.Now,
	}
}

// AccessSpreadsheet opens a spreadsheet and returns its first sheet.
func (s *SheetService) AccessSpreadsheet(ctx context.Context, spreadsheetID string) (*domain.Sheet, error) {
	ss, err := s.Spreadsheet(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	return ss.FirstSheet()
}

// AccessSheet opens a spreadsheet and returns the sheet with the given title.
// An empty title selects the first sheet.
func (s *SheetService) AccessSheet(ctx context.Context, spreadsheetID, title string) (*domain.Sheet, error) {
	if title == "" {
		return s.AccessSpreadsheet(ctx, spreadsheetID)
	}
	ss, err := s.Spreadsheet(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	return ss.SheetByTitle(title)
}

// Spreadsheet returns spreadsheet metadata including every sheet.
func (s *SheetService) Spreadsheet(ctx context.Context, spreadsheetID string) (*domain.Spreadsheet, error) {
	if s.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if spreadsheetID == "" {
		return nil, domain.ErrSpreadsheetIDRequired
	}
	logger.Debug("Opening spreadsheet %s", spreadsheetID)
	return s.client.Open(ctx, spreadsheetID)
}

// GetRows returns every data row of a sheet.
func (s *SheetService) GetRows(ctx context.Context, sheet *domain.Sheet) ([]*domain.Row, error) {
	return s.ListRows(ctx, sheet, domain.RowOptions{Offset: 0})
}

// GetQueriedRows returns the rows matching a structured query.
func (s *SheetService) GetQueriedRows(ctx context.Context, sheet *domain.Sheet, query string) ([]*domain.Row, error) {
	return s.ListRows(ctx, sheet, domain.RowOptions{Query: query})
}

// ListRows returns rows using the full set of fetch options.
func (s *SheetService) ListRows(
	ctx context.Context, sheet *domain.Sheet, opts domain.RowOptions,
) ([]*domain.Row, error) {
	if s.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: sheet is required", domain.ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Fetching rows of %q (offset=%d limit=%d query=%q)", sheet.Title, opts.Offset, opts.Limit, opts.Query)
	return s.client.Rows(ctx, *sheet, opts)
}

// GetRow returns the row at a 1-based sheet row number.
func (s *SheetService) GetRow(ctx context.Context, sheet *domain.Sheet, number int) (*domain.Row, error) {
	if number <= domain.HeaderRowNumber {
		return nil, fmt.Errorf("%w: row %d is not a data row", domain.ErrInvalidInput, number)
	}
	rows, err := s.ListRows(ctx, sheet, domain.RowOptions{
		Offset: number - domain.HeaderRowNumber - 1,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Number != number {
		return nil, fmt.Errorf("row %d: %w", number, domain.ErrNotFound)
	}
	return rows[0], nil
}

// UpdateRow copies each value onto the row when the row already has a
// column of that name, then saves the row. Keys are tried verbatim and
// then in normalised header form.
func (s *SheetService) UpdateRow(ctx context.Context, row *domain.Row, values map[string]string) error {
	if row == nil {
		return fmt.Errorf("%w: row is required", domain.ErrInvalidInput)
	}

	applied := make(map[string]string, len(values))
	for _, key := range domain.SortedKeys(values) {
		column := key
		if !row.Has(column) {
			column = sheetquery.NormalizeColumn(key)
		}
		if row.Set(column, values[key]) {
			applied[column] = values[key]
		} else {
			logger.Debug("Row %d has no column %q, skipping", row.Number, key)
		}
	}

	if err := row.Save(ctx); err != nil {
		return err
	}

	s.record(ctx, domain.JournalActionUpdate, rowSpreadsheet(row), row.Number, applied)
	return nil
}

// CreateRow appends a row built from data.
func (s *SheetService) CreateRow(ctx context.Context, sheet *domain.Sheet, data map[string]string) error {
	if s.client == nil {
		return domain.ErrNotImplemented
	}
	if sheet == nil {
		return fmt.Errorf("%w: sheet is required", domain.ErrInvalidInput)
	}

	row, err := s.client.AddRow(ctx, *sheet, data)
	if err != nil {
		return err
	}

	number := 0
	if row != nil {
		number = row.Number
	}
	s.record(ctx, domain.JournalActionCreate, sheetRef{spreadsheetID: sheet.SpreadsheetID, title: sheet.Title}, number, data)
	return nil
}

// DeleteRow deletes the row if it carries a delete capability.
// Rows without one are left alone and nil is returned.
func (s *SheetService) DeleteRow(ctx context.Context, row *domain.Row) error {
	if row == nil || !row.CanDelete() {
		logger.Debug("Row has no delete capability, nothing to do")
		return nil
	}

	snapshot := make(map[string]string, len(row.Values))
	for k, v := range row.Values {
		snapshot[k] = v
	}

	if err := row.Delete(ctx); err != nil {
		return err
	}

	s.record(ctx, domain.JournalActionDelete, rowSpreadsheet(row), row.Number, snapshot)
	return nil
}

// sheetRef names the sheet a journal entry refers to.
type sheetRef struct {
	spreadsheetID string
	title         string
}

func rowSpreadsheet(row *domain.Row) sheetRef {
	return sheetRef{spreadsheetID: row.SpreadsheetID, title: row.SheetTitle}
}

// record appends a journal entry. Journal failures never fail the operation.
func (s *SheetService) record(
	ctx context.Context, action domain.JournalAction, ref sheetRef, rowNumber int, values map[string]string,
) {
	if s.journal == nil {
		return
	}

	entry := domain.JournalEntry{
		ID:            uuid.New().String(),
		Action:        action,
		SpreadsheetID: ref.spreadsheetID,
		SheetTitle:    ref.title,
		RowNumber:     rowNumber,
		Values:        values,
		At:            s.now().UTC(),
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		logger.Warn("Failed to journal %s of row %d: %v", action, rowNumber, err)
	}
}
