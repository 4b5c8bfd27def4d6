package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetURL_ContainsSpreadsheetID(t *testing.T) {
	url := SheetURL("abc123", 42)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/edit#gid=42", url)
	assert.Contains(t, url, "abc123")
}

func TestSpreadsheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/edit", SpreadsheetURL("abc"))
}

func TestSpreadsheet_FirstSheet(t *testing.T) {
	s := &Spreadsheet{
		ID: "abc",
		Sheets: []Sheet{
			{ID: 0, Title: "July"},
			{ID: 7, Title: "August"},
		},
	}

	first, err := s.FirstSheet()
	require.NoError(t, err)
	assert.Equal(t, "July", first.Title)

	// Returned sheet is a copy
	first.Title = "changed"
	assert.Equal(t, "July", s.Sheets[0].Title)
}

func TestSpreadsheet_FirstSheet_Empty(t *testing.T) {
	s := &Spreadsheet{ID: "abc"}
	_, err := s.FirstSheet()
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestSpreadsheet_SheetByTitle(t *testing.T) {
	s := &Spreadsheet{Sheets: []Sheet{{Title: "July"}, {Title: "August", ID: 9}}}

	sheet, err := s.SheetByTitle("august")
	require.NoError(t, err)
	assert.Equal(t, int64(9), sheet.ID)

	_, err = s.SheetByTitle("September")
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), "September")
}
