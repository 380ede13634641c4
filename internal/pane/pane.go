package pane

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// PaneID identifies each TUI pane.
type PaneID int

const (
	PaneScenes PaneID = iota
	PaneEditor
)

// Pane is the interface that all TUI panes implement.
type Pane interface {
	tea.Model
	ID() PaneID
	Title() string      // full title for wide mode (e.g., "Scenes")
	ShortTitle() string // icon for narrow mode
	Badge() int         // count shown next to the title (0 = hidden)
	SetSize(w, h int)   // called on resize
}

// Capturer is implemented by panes that sometimes own every keystroke
// (text inputs, confirmations). While Capturing reports true the app only
// keeps ctrl+c for itself.
type Capturer interface {
	Capturing() bool
}

// AppMode selects between editing slots and copying their text.
type AppMode int

const (
	ModeEdit AppMode = iota
	ModeCopy
)

func (m AppMode) String() string {
	if m == ModeCopy {
		return "copy"
	}
	return "edit"
}

// BookChangedMsg is emitted after a pane mutates the shared book.
type BookChangedMsg struct{}

// AppModeMsg tells panes the app mode changed.
type AppModeMsg struct {
	Mode AppMode
}

// FlashMsg asks the app to show a short status message.
type FlashMsg struct {
	Text string
	Err  bool
}

func changed() tea.Msg { return BookChangedMsg{} }

func flash(text string) tea.Cmd {
	return func() tea.Msg { return FlashMsg{Text: text} }
}

func flashErr(err error) tea.Cmd {
	return func() tea.Msg { return FlashMsg{Text: err.Error(), Err: true} }
}

// TruncateWithEllipsis truncates s to maxWidth terminal columns, appending
// "…" if truncated. Wide runes count as two columns. If maxWidth < 1, returns
// an empty string.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// FormatAge formats a duration as a human-readable age string.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// wheelDelta maps a mouse wheel event to a scroll delta: positive for wheel
// up, negative for wheel down, zero for anything else.
func wheelDelta(msg tea.MouseMsg) float64 {
	if msg.Action != tea.MouseActionPress {
		return 0
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return 1
	case tea.MouseButtonWheelDown:
		return -1
	}
	return 0
}
