// Package mcp provides an MCP (Model Context Protocol) server adapter for sheetrows.
// It lets AI assistants read and edit spreadsheet rows through the sheet service.
package mcp

import "errors"

var (
	// ErrMissingSheetService is returned when the sheet service is not provided.
	ErrMissingSheetService = errors.New("mcp: sheet service is required")

	// ErrJournalDisabled is returned by the journal tool when no journal is configured.
	ErrJournalDisabled = errors.New("mcp: journal is not enabled")
)
