package services

import (
	"context"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driving"
)

// Ensure JournalService implements the interface.
var _ driving.JournalService = (*JournalService)(nil)

// JournalService reads the row mutation journal.
type JournalService struct {
	store driven.JournalStore
}

// NewJournalService creates a new journal service. store may be nil when
// journaling is disabled.
func NewJournalService(store driven.JournalStore) *JournalService {
	return &JournalService{store: store}
}

// List returns entries newest first, optionally for one spreadsheet.
func (s *JournalService) List(ctx context.Context, spreadsheetID string, limit int) ([]domain.JournalEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit < 0 {
		limit = 0
	}
	return s.store.List(ctx, spreadsheetID, limit)
}

// Clear removes entries, optionally for one spreadsheet.
func (s *JournalService) Clear(ctx context.Context, spreadsheetID string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx, spreadsheetID)
}
