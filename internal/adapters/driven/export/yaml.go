package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

type yamlExporter struct{}

func (yamlExporter) Format() domain.OutputFormat { return domain.OutputYAML }

func (yamlExporter) Export(w io.Writer, columns []string, rows []*domain.Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(resolveColumns(columns, rows), rows)); err != nil {
		return err
	}
	return enc.Close()
}
