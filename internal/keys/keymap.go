// Package keys decodes terminal input into key events and defines the
// editor's keybindings.
package keys

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Editing
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// General
	Save   key.Binding
	Quit   key.Binding
	Ignore key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "start of line"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "end of line"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),

		// Editing
		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "split line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete right"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl-S", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("Ctrl-Q", "quit"),
		),
		// Ctrl-L and stray escapes are swallowed; the next frame redraws anyway.
		Ignore: key.NewBinding(
			key.WithKeys("ctrl+l", "esc"),
		),
	}
}

// ShortHelp returns keybindings for the startup help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit}
}

// FullHelp returns all keybindings grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown}, // Navigation
		{k.Newline, k.Backspace, k.Delete},                                   // Editing
		{k.Save, k.Quit},                                                     // General
	}
}

// HelpLine renders the short help as a single status line.
func (k KeyMap) HelpLine() string {
	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s = %s", h.Key, h.Desc))
	}
	return "HELP: " + strings.Join(parts, " | ")
}
