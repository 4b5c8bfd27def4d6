// Package keymap defines keybindings for the row browser.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Query opens the query editor.
	Query key.Binding

	// Apply runs the edited query.
	Apply key.Binding

	// Cancel leaves the query editor or a confirmation.
	Cancel key.Binding

	// Reload fetches the rows again.
	Reload key.Binding

	// Delete asks to delete the selected row.
	Delete key.Binding

	// Confirm confirms a pending deletion.
	Confirm key.Binding

	// Up moves to the previous row.
	Up key.Binding

	// Down moves to the next row.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Query: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "query"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// BrowseHelp returns keybindings shown while browsing rows.
func (k *KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Query, k.Reload, k.Delete, k.Quit}
}

// QueryHelp returns keybindings shown while editing the query.
func (k *KeyMap) QueryHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// ConfirmHelp returns keybindings shown while a deletion is pending.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
