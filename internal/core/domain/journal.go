package domain

import "time"

// JournalAction identifies the kind of row mutation recorded in the journal.
type JournalAction string

// Journal actions.
const (
	// JournalActionCreate records a row creation.
	JournalActionCreate JournalAction = "create"

	// JournalActionUpdate records a row update.
	JournalActionUpdate JournalAction = "update"

	// JournalActionDelete records a row deletion.
	JournalActionDelete JournalAction = "delete"
)

// IsValid returns true if the action is recognised.
func (a JournalAction) IsValid() bool {
	switch a {
	case JournalActionCreate, JournalActionUpdate, JournalActionDelete:
		return true
	default:
		return false
	}
}

// JournalEntry records a successful row mutation.
type JournalEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Action is the kind of mutation.
	Action JournalAction

	// SpreadsheetID identifies the spreadsheet that was changed.
	SpreadsheetID string

	// SheetTitle is the worksheet that was changed.
	SheetTitle string

	// RowNumber is the sheet row affected. Zero for creations,
	// where the service decides the position.
	RowNumber int

	// Values holds the values written (create/update) or the
	// last known values (delete).
	Values map[string]string

	// At is when the mutation completed.
	At time.Time
}
