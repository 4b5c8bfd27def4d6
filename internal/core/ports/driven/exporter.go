package driven

import (
	"io"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// RowExporter renders rows in a file format.
type RowExporter interface {
	// Format returns the format this exporter writes.
	Format() domain.OutputFormat

	// Export writes columns as a header followed by one record per row.
	Export(w io.Writer, columns []string, rows []*domain.Row) error
}
