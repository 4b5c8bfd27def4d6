// Package domain defines the core entities for sheetrows.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Spreadsheet: A spreadsheet document and its sheets
//   - Sheet: A single worksheet inside a spreadsheet
//   - Row: One record of a sheet, addressed by column name
//   - RowOptions: Paging, ordering and query options for row fetches
//   - JournalEntry: A record of a row mutation
//   - Settings: Typed application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
