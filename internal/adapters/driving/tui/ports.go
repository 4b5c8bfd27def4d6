// Package tui provides an interactive terminal row browser for sheetrows.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sheet reads and deletes spreadsheet rows.
	Sheet driving.SheetService

	// Settings supplies the default spreadsheet ID. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Sheet == nil {
		return ErrMissingSheetService
	}
	return nil
}
