package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/tnguyen21/scenebook/internal/pane"
)

// KeyMap defines the global keybindings. Pane holds the bindings the panes
// handle themselves so help can list everything in one place.
type KeyMap struct {
	Quit       key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Pane1      key.Binding
	Pane2      key.Binding
	ToggleMode key.Binding
	Help       key.Binding

	Pane pane.KeyMap
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		Pane1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "scenes"),
		),
		Pane2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "editor"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit/copy mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Pane: pane.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Tab, k.ToggleMode, k.Help}
}

// FullHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	p := k.Pane
	return [][]key.Binding{
		{k.Quit, k.Tab, k.ShiftTab, k.Pane1, k.Pane2, k.ToggleMode, k.Help},
		{p.Up, p.Down, p.Add, p.Rename, p.Delete, p.Filter},
		{p.PrevScene, p.NextScene, p.NextMode, p.PrevMode},
		{p.Left, p.Right, p.AddSlot, p.Select, p.Save, p.Back},
	}
}
