package mcp

import (
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sheet reads and mutates spreadsheet rows.
	Sheet driving.SheetService

	// Journal lists recorded row mutations. Optional.
	Journal driving.JournalService

	// Settings supplies the default spreadsheet ID. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Sheet == nil {
		return ErrMissingSheetService
	}
	return nil
}
