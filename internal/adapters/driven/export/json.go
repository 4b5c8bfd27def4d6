package export

import (
	"encoding/json"
	"io"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

type jsonExporter struct{}

func (jsonExporter) Format() domain.OutputFormat { return domain.OutputJSON }

func (jsonExporter) Export(w io.Writer, columns []string, rows []*domain.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(resolveColumns(columns, rows), rows))
}
