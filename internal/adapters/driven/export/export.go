package export

import (
	"fmt"
	"io"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
)

// NewExporter returns the exporter for format.
func NewExporter(format domain.OutputFormat) (driven.RowExporter, error) {
	switch format {
	case domain.OutputText:
		return textExporter{}, nil
	case domain.OutputCSV:
		return csvExporter{}, nil
	case domain.OutputJSON:
		return jsonExporter{}, nil
	case domain.OutputYAML:
		return yamlExporter{}, nil
	case domain.OutputXLSX:
		return xlsxExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Write is a convenience wrapper around NewExporter and Export.
func Write(w io.Writer, format domain.OutputFormat, columns []string, rows []*domain.Row) error {
	exp, err := NewExporter(format)
	if err != nil {
		return err
	}
	return exp.Export(w, columns, rows)
}

// resolveColumns falls back to the first row's columns when none are given.
func resolveColumns(columns []string, rows []*domain.Row) []string {
	if len(columns) > 0 || len(rows) == 0 {
		return columns
	}
	return rows[0].Columns
}

// record is the structured form of a row used by JSON and YAML.
type record struct {
	Row    int               `json:"row" yaml:"row"`
	Values map[string]string `json:"values" yaml:"values"`
}

func records(columns []string, rows []*domain.Row) []record {
	out := make([]record, len(rows))
	for i, r := range rows {
		values := make(map[string]string, len(columns))
		for _, c := range columns {
			if v, ok := r.Get(c); ok {
				values[c] = v
			}
		}
		out[i] = record{Row: r.Number, Values: values}
	}
	return out
}

func cells(columns []string, row *domain.Row) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i], _ = row.Get(c)
	}
	return out
}
