// Package rowtable provides the spreadsheet row table for the TUI.
package rowtable

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
	numberTitle    = "#"
)

// Table displays spreadsheet rows with a leading row-number column.
type Table struct {
	model  table.Model
	styles *styles.Styles
	rows   []*domain.Row
	width  int
	height int
}

// New creates an empty row table.
func New(s *styles.Styles) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}

	m := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.SetStyles(s.TableStyles())

	return &Table{
		model:  m,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles navigation messages.
func (t *Table) Update(msg tea.Msg) (*Table, tea.Cmd) {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the table.
func (t *Table) View() string {
	if len(t.rows) == 0 {
		return t.styles.Muted.Render("No rows")
	}
	return t.styles.Table.Render(t.model.View())
}

// SetRows replaces the rows on display. Columns come from the first row.
func (t *Table) SetRows(rows []*domain.Row) {
	t.rows = rows

	var columns []string
	if len(rows) > 0 {
		columns = rows[0].Columns
	}

	// Clear rows first so the table never renders rows wider than its columns.
	t.model.SetRows(nil)
	t.model.SetColumns(buildColumns(columns, rows))
	t.model.SetRows(buildRows(columns, rows))

	if t.model.Cursor() >= len(rows) {
		t.model.SetCursor(len(rows) - 1)
	}
	if t.model.Cursor() < 0 && len(rows) > 0 {
		t.model.SetCursor(0)
	}
}

// Rows returns the rows on display.
func (t *Table) Rows() []*domain.Row {
	return t.rows
}

// Selected returns the row under the cursor, or nil when empty.
func (t *Table) Selected() *domain.Row {
	i := t.model.Cursor()
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// Cursor returns the cursor index.
func (t *Table) Cursor() int {
	return t.model.Cursor()
}

// SetDimensions sets the space available to the table.
func (t *Table) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	// Border and header take four lines.
	h := height - 4
	if h < 1 {
		h = 1
	}
	t.model.SetHeight(h)
	t.model.SetWidth(width - 2)
}

func buildColumns(columns []string, rows []*domain.Row) []table.Column {
	out := make([]table.Column, 0, len(columns)+1)

	numberWidth := lipgloss.Width(numberTitle)
	for _, r := range rows {
		if w := len(strconv.Itoa(r.Number)); w > numberWidth {
			numberWidth = w
		}
	}
	out = append(out, table.Column{Title: numberTitle, Width: numberWidth})

	for _, c := range columns {
		w := lipgloss.Width(c)
		for _, r := range rows {
			if vw := lipgloss.Width(r.Values[c]); vw > w {
				w = vw
			}
		}
		out = append(out, table.Column{Title: c, Width: clamp(w)})
	}
	return out
}

func buildRows(columns []string, rows []*domain.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		cells := make(table.Row, 0, len(columns)+1)
		cells = append(cells, strconv.Itoa(r.Number))
		for _, c := range columns {
			cells = append(cells, r.Values[c])
		}
		out[i] = cells
	}
	return out
}

func clamp(w int) int {
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}
