package pane

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the scene and editor panes respond to.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Add       key.Binding
	Rename    key.Binding
	Delete    key.Binding
	Filter    key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	Select    key.Binding
	Back      key.Binding
	PrevScene key.Binding
	NextScene key.Binding
	NextMode  key.Binding
	PrevMode  key.Binding
	AddSlot   key.Binding
	Save      key.Binding
}

// DefaultKeyMap returns the default pane keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev judge"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next judge"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add scene"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename scene"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete scene"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter scenes"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit/copy slot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev scene"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next scene"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "prev mode"),
		),
		AddSlot: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add slot"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save text"),
		),
	}
}
