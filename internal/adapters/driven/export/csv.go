package export

import (
	"encoding/csv"
	"io"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

type csvExporter struct{}

func (csvExporter) Format() domain.OutputFormat { return domain.OutputCSV }

func (csvExporter) Export(w io.Writer, columns []string, rows []*domain.Row) error {
	columns = resolveColumns(columns, rows)
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(cells(columns, r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
