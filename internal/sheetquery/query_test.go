package sheetquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchase() MapRecord {
	return MapRecord{
		"item":   "Desk chair",
		"price":  "202.39",
		"qty":    "2",
		"notes":  "",
		"vendor": "Acme",
	}
}

func TestCompile_EmptyMatchesEverything(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		query, err := Compile(q)
		require.NoError(t, err)
		assert.True(t, query.IsEmpty())
		assert.True(t, query.Match(purchase()))
		assert.Nil(t, query.Columns())
	}
}

func TestQuery_Match(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"price = 202.39", true},
		{"price == 202.390", true},
		{"price = 202.4", false},
		{"price > 200", true},
		{"price >= 202.39", true},
		{"price < 100", false},
		{"price <= 202.39", true},
		{"price != 202.39", false},
		{"price <> 1", true},
		{`vendor = "Acme"`, true},
		{`vendor = 'Acme'`, true},
		{"vendor = Acme", true},
		{"vendor = acme", false},
		{`item = "Desk chair"`, true},
		{"item = Desk chair", true},
		{"notes = ''", true},
		{"missing = ''", true},
		{"missing = x", false},
		{"price > 200 and qty = 2", true},
		{"price > 200 and qty = 3", false},
		{"price > 500 or qty = 2", true},
		{"not price > 500", true},
		{"not (price > 200 and qty = 2)", false},
		{"(price < 1 or vendor = Acme) and qty >= 2", true},
		{"PRICE = 202.39", true},
		{"Unit Price = 3 or price = 202.39", true},
		{"price = 202.39 AND vendor = Acme", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Compile(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Match(purchase()))
		})
	}
}

func TestQuery_AndBindsTighterThanOr(t *testing.T) {
	// a or (b and c), not (a or b) and c
	q := MustCompile("qty = 2 or price = 1 and vendor = nobody")
	assert.True(t, q.Match(purchase()))
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []string{
		"price",
		"price =",
		"= 5",
		"price ! 5",
		`vendor = "Acme`,
		"(price = 1",
		"price = 1)",
		"price = 1 and",
		"price = 1 qty = 2",
		"and price = 1",
	}

	for _, q := range tests {
		t.Run(q, func(t *testing.T) {
			_, err := Compile(q)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestCompile_ErrorReportsPosition(t *testing.T) {
	_, err := Compile("price ! 5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 6")
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
}

func TestQuery_Columns(t *testing.T) {
	q := MustCompile("price > 1 and (Vendor = a or price < 9)")
	assert.Equal(t, []string{"price", "vendor"}, q.Columns())
	assert.Equal(t, "price > 1 and (Vendor = a or price < 9)", q.String())
}

func TestQuery_DuplicateHeaderColumn(t *testing.T) {
	columns := Headers([]string{"Amount", "Amount"})
	rows := []MapRecord{
		{columns[0]: "1", columns[1]: "5"},
		{columns[0]: "2", columns[1]: "6"},
	}

	got := Select(rows, MustCompile("amount_2 = 5"), "", false, 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0]["amount"])

	assert.Empty(t, Select(rows, MustCompile("amount = 5"), "", false, 0, 0))

	got = Select(rows, nil, "amount_2", true, 0, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "6", got[0]["amount_2"])
}
