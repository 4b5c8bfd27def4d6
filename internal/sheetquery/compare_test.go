package sheetquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"202.39", 202.39, true},
		{"$202.39", 202.39, true},
		{" 1,202.5 ", 1202.5, true},
		{"-3", -3, true},
		{"-$4", -4, true},
		{"€10", 10, true},
		{".5", 0.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"12abc", 0, false},
		{"$", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare("$202.39", "202.39"))
	assert.Equal(t, -1, Compare("9", "10"))
	assert.Equal(t, 1, Compare("b", "a"))
	// Mixed numeric/text falls back to strings.
	assert.Equal(t, -1, Compare("10", "a"))
}

func TestSort(t *testing.T) {
	rows := []MapRecord{
		{"name": "c", "price": "10"},
		{"name": "a", "price": "9"},
		{"name": "b", "price": "10"},
	}

	Sort(rows, "Price", false)
	assert.Equal(t, "a", rows[0]["name"])
	// Stable for equal values.
	assert.Equal(t, "c", rows[1]["name"])
	assert.Equal(t, "b", rows[2]["name"])

	Sort(rows, "name", true)
	assert.Equal(t, []string{"c", "b", "a"}, []string{rows[0]["name"], rows[1]["name"], rows[2]["name"]})
}

func TestSort_ReverseOnly(t *testing.T) {
	rows := []MapRecord{{"n": "1"}, {"n": "2"}, {"n": "3"}}
	Sort(rows, "", true)
	assert.Equal(t, "3", rows[0]["n"])
	assert.Equal(t, "1", rows[2]["n"])
}

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "unitprice", NormalizeColumn("Unit Price"))
	assert.Equal(t, "e-mail", NormalizeColumn("E-Mail"))
	assert.Equal(t, "v1.2", NormalizeColumn("v1.2"))
	assert.Equal(t, "año", NormalizeColumn("Año"))
	assert.Equal(t, "", NormalizeColumn("#!?"))
}

func TestHeaders(t *testing.T) {
	got := Headers([]string{"Item", "Price", "", "price", "Notes", "PRICE"})
	assert.Equal(t, []string{"item", "price", "", "price_2", "notes", "price_3"}, got)
}

func TestSelect(t *testing.T) {
	rows := []MapRecord{
		{"n": "1", "price": "30"},
		{"n": "2", "price": "10"},
		{"n": "3", "price": "20"},
		{"n": "4", "price": "5"},
	}

	got := Select(rows, MustCompile("price >= 10"), "price", false, 0, 0)
	assert.Len(t, got, 3)
	assert.Equal(t, "2", got[0]["n"])
	assert.Equal(t, "1", got[2]["n"])

	got = Select(rows, nil, "", false, 1, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, "2", got[0]["n"])
	assert.Equal(t, "3", got[1]["n"])

	got = Select(rows, MustCompile("price > 1000"), "", false, 0, 0)
	assert.Empty(t, got)

	got = Select(rows, nil, "", true, 10, 0)
	assert.Empty(t, got)
}

func TestColumnIndex(t *testing.T) {
	columns := Headers([]string{"Item", "", "Unit Price", "Item"})

	assert.Equal(t, 0, ColumnIndex(columns, "item"))
	assert.Equal(t, 0, ColumnIndex(columns, "Item"))
	assert.Equal(t, 2, ColumnIndex(columns, "Unit Price"))
	assert.Equal(t, 3, ColumnIndex(columns, "item_2"))
	assert.Equal(t, -1, ColumnIndex(columns, ""))
	assert.Equal(t, -1, ColumnIndex(columns, "notes"))
}

func TestSort_DuplicateHeaderColumn(t *testing.T) {
	rows := []MapRecord{
		{"n": "1", "amount": "1", "amount_2": "9"},
		{"n": "2", "amount": "2", "amount_2": "5"},
	}

	Sort(rows, "amount_2", false)
	assert.Equal(t, "2", rows[0]["n"])
	assert.Equal(t, "1", rows[1]["n"])
}
