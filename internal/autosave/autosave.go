// Package autosave schedules snapshot saves on the bubbletea event loop.
package autosave

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/scenebook/internal/scene"
	"github.com/tnguyen21/scenebook/internal/store"
)

// TickMsg asks the model to save if anything changed.
type TickMsg time.Time

// SavedMsg carries the result of a save back to the model.
type SavedMsg struct {
	At  time.Time
	Err error
}

// Saver persists a snapshot. store.Store satisfies it.
type Saver interface {
	Save(store.Snapshot) error
}

// Schedule returns a tea.Tick command for the next autosave check. A
// non-positive interval disables autosave and returns nil.
func Schedule(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SaveCmd captures sh now and saves it in the background.
func SaveCmd(s Saver, sh *scene.Shared) tea.Cmd {
	if s == nil {
		return nil
	}
	snap := store.Capture(sh)
	return func() tea.Msg {
		err := s.Save(snap)
		return SavedMsg{At: time.Now(), Err: err}
	}
}
