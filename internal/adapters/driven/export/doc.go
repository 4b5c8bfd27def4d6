// Package export writes rows in the output formats the CLI supports:
// an aligned text table, CSV, JSON, YAML and Excel workbooks.
package export
