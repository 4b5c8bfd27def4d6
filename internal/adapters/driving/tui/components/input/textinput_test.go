package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/tui/styles"
)

func TestNewQueryInput(t *testing.T) {
	input := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.False(t, input.Focused())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	input := NewQueryInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestQueryInput_UpdateWhenFocused(t *testing.T) {
	input := NewQueryInput(nil)
	input.Focus()

	updated, _ := input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	assert.Equal(t, input, updated)
	assert.Equal(t, "p", input.Value())
}

func TestQueryInput_UpdateWhenBlurred(t *testing.T) {
	input := NewQueryInput(nil)

	input.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	assert.Equal(t, "", input.Value())
}

func TestQueryInput_View(t *testing.T) {
	input := NewQueryInput(nil)

	assert.Contains(t, input.View(), "Query")
}

func TestQueryInput_SetValue(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetValue("price = 202.39")

	assert.Equal(t, "price = 202.39", input.Value())
}

func TestQueryInput_FocusBlur(t *testing.T) {
	input := NewQueryInput(nil)

	input.Focus()
	assert.True(t, input.Focused())

	input.Blur()
	assert.False(t, input.Focused())
}

func TestQueryInput_SetWidth(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 88, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 20, input.textinput.Width)
}
