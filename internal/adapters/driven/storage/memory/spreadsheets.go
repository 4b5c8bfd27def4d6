package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

// Ensure Spreadsheets implements the interface.
var _ driven.SpreadsheetClient = (*Spreadsheets)(nil)

// Spreadsheets is an in-memory implementation of driven.SpreadsheetClient.
// It behaves like the Google backend: the first row of every sheet is the
// header, deleting a row shifts the rows below it up, and queries use
// the sheetquery language.
type Spreadsheets struct {
	mu          sync.RWMutex
	docs        map[string]*memDoc
	nextSheetID int64

	openErr   error
	rowsErr   error
	addErr    error
	saveErr   error
	deleteErr error
}

type memDoc struct {
	title  string
	sheets []*memSheet
}

type memSheet struct {
	id     int64
	title  string
	header []string
	rows   [][]string
}

// NewSpreadsheets creates an empty in-memory spreadsheet backend.
func NewSpreadsheets() *Spreadsheets {
	return &Spreadsheets{
		docs: make(map[string]*memDoc),
	}
}

// WithOpenError makes Open return err.
func (s *Spreadsheets) WithOpenError(err error) *Spreadsheets {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
	return s
}

// WithRowsError makes Rows return err.
func (s *Spreadsheets) WithRowsError(err error) *Spreadsheets {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rowsErr = err
	return s
}

// WithAddError makes AddRow return err.
func (s *Spreadsheets) WithAddError(err error) *Spreadsheets {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addErr = err
	return s
}

// WithSaveError makes row saves return err.
func (s *Spreadsheets) WithSaveError(err error) *Spreadsheets {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
	return s
}

// WithDeleteError makes row deletes return err.
func (s *Spreadsheets) WithDeleteError(err error) *Spreadsheets {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr = err
	return s
}

// AddSheet adds a sheet to a spreadsheet, creating the spreadsheet if needed.
// header is the raw header row; rows are data rows in sheet order.
// Returns the new sheet's ID.
func (s *Spreadsheets) AddSheet(spreadsheetID, title string, header []string, rows ...[]string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[spreadsheetID]
	if !ok {
		doc = &memDoc{title: spreadsheetID}
		s.docs[spreadsheetID] = doc
	}

	sheet := &memSheet{
		id:     s.nextSheetID,
		title:  title,
		header: append([]string(nil), header...),
	}
	s.nextSheetID++
	for _, r := range rows {
		sheet.rows = append(sheet.rows, append([]string(nil), r...))
	}
	doc.sheets = append(doc.sheets, sheet)
	return sheet.id
}

// SetTitle sets the title of a spreadsheet.
func (s *Spreadsheets) SetTitle(spreadsheetID, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[spreadsheetID]; ok {
		doc.title = title
	}
}

// Snapshot returns a copy of a sheet's data rows.
func (s *Spreadsheets) Snapshot(spreadsheetID, title string) [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet := s.findSheetByTitle(spreadsheetID, title)
	if sheet == nil {
		return nil
	}
	out := make([][]string, len(sheet.rows))
	for i, r := range sheet.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Open returns spreadsheet metadata.
func (s *Spreadsheets) Open(_ context.Context, spreadsheetID string) (*domain.Spreadsheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.openErr != nil {
		return nil, s.openErr
	}

	doc, ok := s.docs[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, domain.ErrNotFound)
	}

	ss := &domain.Spreadsheet{
		ID:    spreadsheetID,
		Title: doc.title,
		URL:   domain.SpreadsheetURL(spreadsheetID),
	}
	for i, sh := range doc.sheets {
		ss.Sheets = append(ss.Sheets, domain.Sheet{
			SpreadsheetID: spreadsheetID,
			ID:            sh.id,
			Title:         sh.title,
			Index:         i,
			URL:           domain.SheetURL(spreadsheetID, sh.id),
			RowCount:      len(sh.rows) + domain.HeaderRowNumber,
			ColumnCount:   len(sh.header),
		})
	}
	return ss, nil
}

// Rows returns the sheet's data rows selected by opts.
func (s *Spreadsheets) Rows(_ context.Context, sheet domain.Sheet, opts domain.RowOptions) ([]*domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rowsErr != nil {
		return nil, s.rowsErr
	}

	query, err := sheetquery.Compile(opts.Query)
	if err != nil {
		return nil, err
	}

	sh := s.findSheet(sheet.SpreadsheetID, sheet.ID)
	if sh == nil {
		return nil, fmt.Errorf("sheet %d: %w", sheet.ID, domain.ErrNotFound)
	}

	columns := sheetquery.Headers(sh.header)
	rows := make([]*domain.Row, 0, len(sh.rows))
	for i, cells := range sh.rows {
		row := domain.RowFromCells(columns, cells, i+domain.HeaderRowNumber+1)
		row.SpreadsheetID = sheet.SpreadsheetID
		row.SheetTitle = sh.title
		row.Bind(&rowHandle{store: s, spreadsheetID: sheet.SpreadsheetID, sheetID: sh.id})
		rows = append(rows, row)
	}

	return sheetquery.Select(rows, query, opts.OrderBy, opts.Reverse, opts.Offset, opts.Limit), nil
}

// AddRow appends a row. Keys that are not columns of the sheet are ignored.
func (s *Spreadsheets) AddRow(_ context.Context, sheet domain.Sheet, data map[string]string) (*domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addErr != nil {
		return nil, s.addErr
	}

	sh := s.findSheet(sheet.SpreadsheetID, sheet.ID)
	if sh == nil {
		return nil, fmt.Errorf("sheet %d: %w", sheet.ID, domain.ErrNotFound)
	}

	columns := sheetquery.Headers(sh.header)
	cells := make([]string, len(columns))
	for key, val := range data {
		if i := sheetquery.ColumnIndex(columns, key); i >= 0 {
			cells[i] = val
		}
	}
	sh.rows = append(sh.rows, cells)

	row := domain.RowFromCells(columns, cells, len(sh.rows)+domain.HeaderRowNumber)
	row.SpreadsheetID = sheet.SpreadsheetID
	row.SheetTitle = sh.title
	row.Bind(&rowHandle{store: s, spreadsheetID: sheet.SpreadsheetID, sheetID: sh.id})
	return row, nil
}

// findSheet locates a sheet by ID (caller must hold lock).
func (s *Spreadsheets) findSheet(spreadsheetID string, sheetID int64) *memSheet {
	doc, ok := s.docs[spreadsheetID]
	if !ok {
		return nil
	}
	for _, sh := range doc.sheets {
		if sh.id == sheetID {
			return sh
		}
	}
	return nil
}

// findSheetByTitle locates a sheet by title (caller must hold lock).
func (s *Spreadsheets) findSheetByTitle(spreadsheetID, title string) *memSheet {
	doc, ok := s.docs[spreadsheetID]
	if !ok {
		return nil
	}
	for _, sh := range doc.sheets {
		if sh.title == title {
			return sh
		}
	}
	return nil
}

// rowHandle is the save/delete capability attached to in-memory rows.
type rowHandle struct {
	store         *Spreadsheets
	spreadsheetID string
	sheetID       int64
}

// Save writes the row's dirty columns into their cells.
func (h *rowHandle) Save(_ context.Context, row *domain.Row) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	if h.store.saveErr != nil {
		return h.store.saveErr
	}

	sh := h.store.findSheet(h.spreadsheetID, h.sheetID)
	idx := row.Number - domain.HeaderRowNumber - 1
	if sh == nil || idx < 0 || idx >= len(sh.rows) {
		return fmt.Errorf("row %d: %w", row.Number, domain.ErrNotFound)
	}

	columns := sheetquery.Headers(sh.header)
	cells := sh.rows[idx]
	for len(cells) < len(columns) {
		cells = append(cells, "")
	}
	for i, c := range columns {
		if c == "" || !row.Dirty(c) {
			continue
		}
		if v, ok := row.Values[c]; ok {
			cells[i] = v
		}
	}
	sh.rows[idx] = cells
	return nil
}

// Delete removes the row; rows below it move up by one.
func (h *rowHandle) Delete(_ context.Context, row *domain.Row) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	if h.store.deleteErr != nil {
		return h.store.deleteErr
	}

	sh := h.store.findSheet(h.spreadsheetID, h.sheetID)
	idx := row.Number - domain.HeaderRowNumber - 1
	if sh == nil || idx < 0 || idx >= len(sh.rows) {
		return fmt.Errorf("row %d: %w", row.Number, domain.ErrNotFound)
	}

	sh.rows = append(sh.rows[:idx], sh.rows[idx+1:]...)
	return nil
}
