// Package driving defines the interfaces the CLI, the MCP server and the
// TUI call into: row access on a sheet, the mutation journal and settings.
// These are the "driving" ports of the hexagon.
//
// Implementations live in internal/core/services.
package driving
