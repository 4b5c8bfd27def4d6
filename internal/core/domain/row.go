package domain

import (
	"context"
	"sort"
)

// HeaderRowNumber is the sheet row holding column names.
// Data rows start at HeaderRowNumber + 1.
const HeaderRowNumber = 1

// RowHandle is the save/delete capability a spreadsheet client attaches
// to the rows it returns.
type RowHandle interface {
	// Save writes the row's current values back to the sheet.
	Save(ctx context.Context, row *Row) error

	// Delete removes the row from the sheet.
	Delete(ctx context.Context, row *Row) error
}

// Row is a single record of a sheet, addressed by column name.
type Row struct {
	// SpreadsheetID identifies the spreadsheet the row was read from.
	SpreadsheetID string

	// SheetTitle is the worksheet the row was read from.
	SheetTitle string

	// Number is the 1-based sheet row number. The header is row 1.
	Number int

	// Columns lists the column names in sheet order.
	Columns []string

	// Values maps column name to the displayed cell value.
	Values map[string]string

	handle RowHandle
	dirty  map[string]bool
}

// NewRow creates a detached row with the given columns and values.
// Columns not present in values are exposed with an empty value.
func NewRow(number int, columns []string, values map[string]string) *Row {
	r := &Row{
		Number:  number,
		Columns: append([]string(nil), columns...),
		Values:  make(map[string]string, len(columns)),
	}
	for _, c := range columns {
		r.Values[c] = values[c]
	}
	return r
}

// RowFromCells builds a detached row from a header and a row of cells.
// Columns with an empty name are dropped and missing cells read as "".
func RowFromCells(columns, cells []string, number int) *Row {
	names := make([]string, 0, len(columns))
	values := make(map[string]string, len(columns))
	for i, c := range columns {
		if c == "" {
			continue
		}
		names = append(names, c)
		if i < len(cells) {
			values[c] = cells[i]
		}
	}
	return NewRow(number, names, values)
}

// Bind attaches a save/delete capability to the row.
func (r *Row) Bind(h RowHandle) {
	r.handle = h
}

// Has reports whether the row exposes a column with the given name.
func (r *Row) Has(column string) bool {
	_, ok := r.Values[column]
	return ok
}

// Get returns the value of a column and whether the column exists.
func (r *Row) Get(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Set assigns a value to an existing column and marks it dirty.
// It returns false and leaves the row unchanged if the column is not exposed.
func (r *Row) Set(column, value string) bool {
	if !r.Has(column) {
		return false
	}
	r.Values[column] = value
	if r.dirty == nil {
		r.dirty = make(map[string]bool)
	}
	r.dirty[column] = true
	return true
}

// Dirty reports whether a column was changed by Set since the row was
// read or last saved.
func (r *Row) Dirty(column string) bool {
	return r.dirty[column]
}

// DirtyColumns returns the changed columns in sheet order.
func (r *Row) DirtyColumns() []string {
	var out []string
	for _, c := range r.Columns {
		if r.dirty[c] {
			out = append(out, c)
		}
	}
	return out
}

// CanSave reports whether a save capability is attached.
func (r *Row) CanSave() bool {
	return r.handle != nil
}

// CanDelete reports whether a delete capability is attached.
func (r *Row) CanDelete() bool {
	return r.handle != nil
}

// Save persists the row through its attached capability.
func (r *Row) Save(ctx context.Context) error {
	if r.handle == nil {
		return ErrRowDetached
	}
	if err := r.handle.Save(ctx, r); err != nil {
		return err
	}
	r.dirty = nil
	return nil
}

// Delete removes the row through its attached capability.
func (r *Row) Delete(ctx context.Context) error {
	if r.handle == nil {
		return ErrRowDetached
	}
	return r.handle.Delete(ctx, r)
}

// Clone returns a deep copy of the row, including its dirty columns,
// sharing the attached capability.
func (r *Row) Clone() *Row {
	c := NewRow(r.Number, r.Columns, r.Values)
	c.SpreadsheetID = r.SpreadsheetID
	c.SheetTitle = r.SheetTitle
	c.handle = r.handle
	for col := range r.dirty {
		if c.dirty == nil {
			c.dirty = make(map[string]bool, len(r.dirty))
		}
		c.dirty[col] = true
	}
	return c
}

// OrderedValues returns the row values in column order.
func (r *Row) OrderedValues() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = r.Values[c]
	}
	return out
}

// SortedKeys returns the keys of a value map in lexical order.
func SortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
