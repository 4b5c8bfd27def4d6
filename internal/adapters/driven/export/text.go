package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

// textExporter writes an aligned table with the sheet row number first.
type textExporter struct{}

func (textExporter) Format() domain.OutputFormat { return domain.OutputText }

func (textExporter) Export(w io.Writer, columns []string, rows []*domain.Row) error {
	columns = resolveColumns(columns, rows)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ROW\t%s\n", strings.ToUpper(strings.Join(columns, "\t")))
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\n", r.Number, strings.Join(cells(columns, r), "\t"))
	}
	return tw.Flush()
}
