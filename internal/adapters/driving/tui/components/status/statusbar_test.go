package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.RowCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		rows     int
		contains []string
	}{
		{name: "ready", state: StateReady, rows: 3, contains: []string{"3 rows", "↑/k: up", "↓/j: down", "/: query", "q: quit"}},
		{name: "single row", state: StateReady, rows: 1, contains: []string{"1 row"}},
		{name: "ready with message", state: StateReady, rows: 2, message: "row 4 deleted", contains: []string{"2 rows", "row 4 deleted"}},
		{name: "loading", state: StateLoading, contains: []string{"Loading..."}},
		{name: "querying", state: StateQuerying, contains: []string{"Editing query", "enter: apply", "esc: cancel"}},
		{name: "confirm", state: StateConfirm, message: "Delete row 3?", contains: []string{"Delete row 3?", "y: confirm"}},
		{name: "error", state: StateError, message: "quota exceeded", contains: []string{"Error: quota exceeded"}},
		{name: "error without message", state: StateError, contains: []string{"Error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetRowCount(tt.rows)

			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestStatusBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(5)

	assert.NotEmpty(t, bar.View())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetRowCount(7)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 7, bar.RowCount())
}
