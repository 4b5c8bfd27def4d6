package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sheetrows/internal/core/domain"
)

func TestJournalService_NilStore(t *testing.T) {
	service := NewJournalService(nil)

	_, err := service.List(context.Background(), "", 10)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Clear(context.Background(), ""), domain.ErrNotImplemented)
}

func TestJournalService_ListAndClear(t *testing.T) {
	store := memory.NewJournalStore()
	ctx := context.Background()
	at := time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Append(ctx, domain.JournalEntry{ID: "a", SpreadsheetID: "one", At: at})
	_ = store.Append(ctx, domain.JournalEntry{ID: "b", SpreadsheetID: "two", At: at.Add(time.Hour)})

	service := NewJournalService(store)

	entries, err := service.List(ctx, "", -5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)

	require.NoError(t, service.Clear(ctx, "two"))
	entries, err = service.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
}
