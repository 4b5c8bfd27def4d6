package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

const (
	defaultSheetName = "Rows"
	maxSheetName     = 31
)

// xlsxExporter writes a single-sheet workbook named after the source sheet.
type xlsxExporter struct{}

func (xlsxExporter) Format() domain.OutputFormat { return domain.OutputXLSX }

func (xlsxExporter) Export(w io.Writer, columns []string, rows []*domain.Row) error {
	columns = resolveColumns(columns, rows)

	f := excelize.NewFile()
	defer f.Close()

	name := defaultSheetName
	if len(rows) > 0 {
		name = sheetName(rows[0].SheetTitle)
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		values := cells(columns, r)
		line := make([]any, len(values))
		for j, v := range values {
			line[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &line); err != nil {
			return fmt.Errorf("write row %d: %w", r.Number, err)
		}
	}

	if len(columns) > 0 {
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze header: %w", err)
		}
	}

	return f.Write(w)
}

// sheetName makes title usable as a worksheet name.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.Trim(title, "'"))
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if strings.TrimSpace(name) == "" {
		return defaultSheetName
	}
	return name
}
