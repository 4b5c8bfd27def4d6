package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sheetrows/internal/core/domain"
	"github.com/custodia-labs/sheetrows/internal/core/ports/driven"
)

// Ensure JournalStore implements the interface.
var _ driven.JournalStore = (*JournalStore)(nil)

// JournalStore is an in-memory implementation of driven.JournalStore.
type JournalStore struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
}

// NewJournalStore creates a new in-memory journal store.
func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

// Append records an entry.
func (s *JournalStore) Append(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Values = copyValues(entry.Values)
	s.entries = append(s.entries, entry)
	return nil
}

// List returns entries newest first.
func (s *JournalStore) List(_ context.Context, spreadsheetID string, limit int) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.JournalEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if spreadsheetID != "" && e.SpreadsheetID != spreadsheetID {
			continue
		}
		e.Values = copyValues(e.Values)
		result = append(result, e)
	}

	// Insertion order breaks ties between equal timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].At.After(result[j].At)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Clear removes entries for a spreadsheet, or every entry.
func (s *JournalStore) Clear(_ context.Context, spreadsheetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spreadsheetID == "" {
		s.entries = nil
		return nil
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.SpreadsheetID != spreadsheetID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func copyValues(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
