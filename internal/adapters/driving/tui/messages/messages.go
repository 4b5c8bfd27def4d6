// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// Mode identifies how key presses are interpreted.
type Mode int

const (
	// ModeBrowse moves through rows.
	ModeBrowse Mode = iota
	// ModeQuery edits the row query.
	ModeQuery
	// ModeConfirmDelete waits for a deletion to be confirmed.
	ModeConfirmDelete
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeQuery:
		return "query"
	case ModeConfirmDelete:
		return "confirm_delete"
	default:
		return "unknown"
	}
}

// SheetOpened carries the sheet resolved at startup.
type SheetOpened struct {
	Sheet *domain.Sheet
	Err   error
}

// RowsLoaded carries the rows fetched for a query. An empty query
// means every row.
type RowsLoaded struct {
	Query string
	Rows  []*domain.Row
	Err   error
}

// RowDeleted signals a row deletion finished.
type RowDeleted struct {
	Number int
	Err    error
}

// ConfigReloaded signals the configuration file changed on disk.
type ConfigReloaded struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
