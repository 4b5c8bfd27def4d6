package domain

import (
	"fmt"
	"strings"
)

// spreadsheetURLPrefix is the browser URL prefix for Google spreadsheets.
const spreadsheetURLPrefix = "https://docs.google.com/spreadsheets/d/"

// Spreadsheet is a spreadsheet document as reported by the service.
type Spreadsheet struct {
	// ID is the spreadsheet identifier found in the spreadsheet's URL.
	ID string

	// Title is the document title.
	Title string

	// URL is the browser URL of the document.
	URL string

	// Locale is the spreadsheet locale (e.g., "en_US").
	Locale string

	// TimeZone is the spreadsheet time zone (e.g., "Europe/London").
	TimeZone string

	// Sheets lists the worksheets in display order.
	Sheets []Sheet
}

// FirstSheet returns the first worksheet of the spreadsheet.
func (s *Spreadsheet) FirstSheet() (*Sheet, error) {
	if len(s.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := s.Sheets[0]
	return &sheet, nil
}

// SheetByTitle returns the worksheet with the given title.
// Matching is case-insensitive.
func (s *Spreadsheet) SheetByTitle(title string) (*Sheet, error) {
	for i := range s.Sheets {
		if strings.EqualFold(s.Sheets[i].Title, title) {
			sheet := s.Sheets[i]
			return &sheet, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, title)
}

// Sheet is a single worksheet inside a spreadsheet.
type Sheet struct {
	// SpreadsheetID is the ID of the owning spreadsheet.
	SpreadsheetID string

	// ID is the numeric sheet ID (the "gid" in URLs).
	ID int64

	// Title is the tab name.
	Title string

	// Index is the zero-based tab position.
	Index int

	// URL is the browser URL of this sheet. It always contains SpreadsheetID.
	URL string

	// RowCount is the grid row count, including the header row.
	RowCount int

	// ColumnCount is the grid column count.
	ColumnCount int
}

// SheetURL builds the browser URL for a sheet of a spreadsheet.
func SheetURL(spreadsheetID string, sheetID int64) string {
	return fmt.Sprintf("%s%s/edit#gid=%d", spreadsheetURLPrefix, spreadsheetID, sheetID)
}

// SpreadsheetURL builds the browser URL for a spreadsheet.
func SpreadsheetURL(spreadsheetID string) string {
	return spreadsheetURLPrefix + spreadsheetID + "/edit"
}
