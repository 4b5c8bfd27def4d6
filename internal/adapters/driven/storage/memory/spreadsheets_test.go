package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/sheetquery"
)

func newPurchases(t *testing.T) (*Spreadsheets, domain.Sheet) {
	t.Helper()
	store := NewSpreadsheets()
	store.AddSheet("purchases", "July 2019",
		[]string{"Item", "Price", "Notes"},
		[]string{"Desk chair", "$202.39", ""},
		[]string{"Monitor", "$149.99", "gift"},
		[]string{"Cable", "$9.50", ""},
	)
	store.AddSheet("purchases", "August 2019", []string{"Item"})
	store.SetTitle("purchases", "Purchases")

	ss, err := store.Open(context.Background(), "purchases")
	require.NoError(t, err)
	return store, ss.Sheets[0]
}

func TestSpreadsheets_Open(t *testing.T) {
	store, _ := newPurchases(t)

	ss, err := store.Open(context.Background(), "purchases")
	require.NoError(t, err)
	assert.Equal(t, "Purchases", ss.Title)
	require.Len(t, ss.Sheets, 2)
	assert.Equal(t, "July 2019", ss.Sheets[0].Title)
	assert.Equal(t, 0, ss.Sheets[0].Index)
	assert.Equal(t, 4, ss.Sheets[0].RowCount)
	assert.Equal(t, 3, ss.Sheets[0].ColumnCount)
	assert.Contains(t, ss.Sheets[0].URL, "purchases")
	assert.Equal(t, 1, ss.Sheets[1].Index)
}

func TestSpreadsheets_Open_NotFound(t *testing.T) {
	store := NewSpreadsheets()
	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpreadsheets_Rows(t *testing.T) {
	store, sheet := newPurchases(t)

	rows, err := store.Rows(context.Background(), sheet, domain.RowOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, []string{"item", "price", "notes"}, rows[0].Columns)
	assert.Equal(t, "$202.39", rows[0].Values["price"])
	assert.Equal(t, "purchases", rows[0].SpreadsheetID)
	assert.Equal(t, "July 2019", rows[0].SheetTitle)
	assert.True(t, rows[0].CanSave())
	assert.True(t, rows[0].CanDelete())
	assert.Equal(t, 4, rows[2].Number)
}

func TestSpreadsheets_Rows_Query(t *testing.T) {
	store, sheet := newPurchases(t)

	rows, err := store.Rows(context.Background(), sheet, domain.RowOptions{Query: "price = 202.39"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "$202.39", rows[0].Values["price"])
	assert.Equal(t, 2, rows[0].Number)
}

func TestSpreadsheets_Rows_OrderAndPage(t *testing.T) {
	store, sheet := newPurchases(t)

	rows, err := store.Rows(context.Background(), sheet, domain.RowOptions{OrderBy: "price", Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Monitor", rows[0].Values["item"])
	// Ordering does not renumber rows.
	assert.Equal(t, 3, rows[0].Number)
}

func TestSpreadsheets_Rows_BadQuery(t *testing.T) {
	store, sheet := newPurchases(t)
	_, err := store.Rows(context.Background(), sheet, domain.RowOptions{Query: "price ="})
	assert.ErrorIs(t, err, sheetquery.ErrSyntax)
}

func TestSpreadsheets_Rows_UnknownSheet(t *testing.T) {
	store, sheet := newPurchases(t)
	sheet.ID = 99
	_, err := store.Rows(context.Background(), sheet, domain.RowOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpreadsheets_SaveRow(t *testing.T) {
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{Query: "item = Cable"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows[0].Set("notes", "Test")
	require.NoError(t, rows[0].Save(ctx))

	snap := store.Snapshot("purchases", "July 2019")
	assert.Equal(t, []string{"Cable", "$9.50", "Test"}, snap[2])
}

func TestSpreadsheets_SaveRow_ExtendsShortRows(t *testing.T) {
	store := NewSpreadsheets()
	store.AddSheet("s", "Sheet1", []string{"a", "b", "c"}, []string{"1"})
	ss, err := store.Open(context.Background(), "s")
	require.NoError(t, err)

	rows, err := store.Rows(context.Background(), ss.Sheets[0], domain.RowOptions{})
	require.NoError(t, err)
	require.True(t, rows[0].Has("c"))
	rows[0].Set("c", "3")
	require.NoError(t, rows[0].Save(context.Background()))

	assert.Equal(t, []string{"1", "", "3"}, store.Snapshot("s", "Sheet1")[0])
}

func TestSpreadsheets_DeleteRow_ShiftsRowsUp(t *testing.T) {
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{})
	require.NoError(t, err)
	require.NoError(t, rows[0].Delete(ctx))

	after, err := store.Rows(ctx, sheet, domain.RowOptions{})
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, "Monitor", after[0].Values["item"])
	assert.Equal(t, 2, after[0].Number)
}

func TestSpreadsheets_DeleteRow_Stale(t *testing.T) {
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{})
	require.NoError(t, err)
	require.NoError(t, rows[2].Delete(ctx))

	// Row 4 no longer exists.
	err = rows[2].Delete(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpreadsheets_AddRow(t *testing.T) {
	store, sheet := newPurchases(t)
	ctx := context.Background()

	row, err := store.AddRow(ctx, sheet, map[string]string{
		"item":    "Lamp",
		"Price":   "$20.00",
		"unknown": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, row.Number)
	assert.Equal(t, "$20.00", row.Values["price"])
	assert.False(t, row.Has("unknown"))

	snap := store.Snapshot("purchases", "July 2019")
	require.Len(t, snap, 4)
	assert.Equal(t, []string{"Lamp", "$20.00", ""}, snap[3])
}

func TestSpreadsheets_InjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{})
	require.NoError(t, err)

	store.WithSaveError(boom).WithDeleteError(boom)
	assert.Same(t, boom, rows[0].Save(ctx))
	assert.Same(t, boom, rows[0].Delete(ctx))

	store.WithOpenError(boom).WithRowsError(boom).WithAddError(boom)
	_, err = store.Open(ctx, "purchases")
	assert.Same(t, boom, err)
	_, err = store.Rows(ctx, sheet, domain.RowOptions{})
	assert.Same(t, boom, err)
	_, err = store.AddRow(ctx, sheet, nil)
	assert.Same(t, boom, err)
}

func TestSpreadsheets_UnnamedColumnsHidden(t *testing.T) {
	store := NewSpreadsheets()
	store.AddSheet("s", "Sheet1", []string{"a", "", "c"}, []string{"1", "2", "3"})
	ss, err := store.Open(context.Background(), "s")
	require.NoError(t, err)

	rows, err := store.Rows(context.Background(), ss.Sheets[0], domain.RowOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, rows[0].Columns)
	assert.Equal(t, "3", rows[0].Values["c"])
}

func TestSpreadsheets_Snapshot_Unknown(t *testing.T) {
	store := NewSpreadsheets()
	assert.Nil(t, store.Snapshot("x", "y"))
}

func TestSpreadsheets_InjectedErrors_Concurrent(t *testing.T) {
	boom := errors.New("boom")
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.WithOpenError(boom).WithRowsError(boom).WithSaveError(boom)
			store.WithOpenError(nil).WithRowsError(nil).WithSaveError(nil)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Open(ctx, "purchases")
			_, _ = store.Rows(ctx, sheet, domain.RowOptions{})
			_ = rows[0].Clone().Save(ctx)
		}()
	}
	wg.Wait()

	_, err = store.Open(ctx, "purchases")
	assert.NoError(t, err)
}

func TestSpreadsheets_Rows_DuplicateHeaders(t *testing.T) {
	store := NewSpreadsheets()
	store.AddSheet("s", "Sheet1", []string{"Amount", "Amount"},
		[]string{"1", "5"},
		[]string{"2", "6"},
	)
	ss, err := store.Open(context.Background(), "s")
	require.NoError(t, err)

	rows, err := store.Rows(context.Background(), ss.Sheets[0], domain.RowOptions{Query: "amount_2 = 5"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Number)

	rows, err = store.Rows(context.Background(), ss.Sheets[0], domain.RowOptions{OrderBy: "amount_2", Reverse: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "6", rows[0].Values["amount_2"])
}

func TestSpreadsheets_SaveRow_KeepsUntouchedCells(t *testing.T) {
	store, sheet := newPurchases(t)
	ctx := context.Background()

	rows, err := store.Rows(ctx, sheet, domain.RowOptions{Query: "item = Cable"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Another writer changes the price after the row was read.
	other, err := store.Rows(ctx, sheet, domain.RowOptions{Query: "item = Cable"})
	require.NoError(t, err)
	other[0].Set("price", "$10.00")
	require.NoError(t, other[0].Save(ctx))

	rows[0].Set("notes", "Test")
	require.NoError(t, rows[0].Save(ctx))

	assert.Equal(t, []string{"Cable", "$10.00", "Test"}, store.Snapshot("purchases", "July 2019")[2])
}
