package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/scenebook/internal/autosave"
	"github.com/tnguyen21/scenebook/internal/config"
	"github.com/tnguyen21/scenebook/internal/pane"
	"github.com/tnguyen21/scenebook/internal/scene"
	"github.com/tnguyen21/scenebook/internal/theme"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 3 * time.Second

// flashExpiredMsg clears the flash it was scheduled for, unless a newer one
// replaced it.
type flashExpiredMsg struct{ seq int }

// Model is the root bubbletea Model that orchestrates panes, tab bar,
// status bar, and autosave.
type Model struct {
	panes      []pane.Pane
	activePane int
	width      int
	height     int
	layoutMode LayoutMode
	keys       KeyMap
	shared     *scene.Shared
	saver      autosave.Saver
	config     *config.Config
	help       help.Model
	showHelp   bool
	appMode    pane.AppMode

	flash    string
	flashErr bool
	flashSeq int

	dirty    bool
	lastSave time.Time
}

// New creates a root Model over a shared book. saver may be nil, in which
// case nothing is persisted from inside the program.
func New(cfg config.Config, shared *scene.Shared, saver autosave.Saver) Model {
	panes := []pane.Pane{
		pane.NewScenesPane(shared),
		pane.NewEditorPane(shared),
	}

	h := help.New()
	h.ShowAll = true

	return Model{
		panes:  panes,
		keys:   DefaultKeyMap(),
		shared: shared,
		saver:  saver,
		config: &cfg,
		help:   h,
	}
}

// Ensure KeyMap satisfies help.KeyMap at compile time.
var _ help.KeyMap = KeyMap{}

func (m Model) autosaveInterval() time.Duration {
	return time.Duration(m.config.AutosaveSeconds) * time.Second
}

// Init starts the autosave timer.
func (m Model) Init() tea.Cmd {
	return autosave.Schedule(m.autosaveInterval())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		m.help.Width = msg.Width
		m.resizePanes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pane.BookChangedMsg:
		m.dirty = true
		return m, tea.Batch(m.forwardToAllPanes(msg)...)

	case pane.FlashMsg:
		m.flashSeq++
		m.flash = msg.Text
		m.flashErr = msg.Err
		seq := m.flashSeq
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashExpiredMsg{seq: seq}
		})

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case autosave.TickMsg:
		var cmds []tea.Cmd
		if m.dirty {
			m.dirty = false
			cmds = append(cmds, autosave.SaveCmd(m.saver, m.shared))
		}
		cmds = append(cmds, autosave.Schedule(m.autosaveInterval()))
		return m, tea.Batch(cmds...)

	case autosave.SavedMsg:
		if msg.Err != nil {
			m.dirty = true
			return m.Update(pane.FlashMsg{Text: "save failed: " + msg.Err.Error(), Err: true})
		}
		m.lastSave = msg.At
		return m, nil
	}

	return m, nil
}

// resizePanes hands each pane its share of the content area.
func (m *Model) resizePanes() {
	contentH := ContentHeight(m.height)
	if m.layoutMode == LayoutWide {
		listW, editorW := SplitWidths(m.width)
		m.panes[pane.PaneScenes].SetSize(listW, contentH)
		m.panes[pane.PaneEditor].SetSize(editorW, contentH)
		return
	}
	for _, p := range m.panes {
		p.SetSize(m.width, contentH)
	}
}

// View renders the full UI: tab bar, pane content, and status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	var content string
	switch {
	case m.showHelp:
		content = m.help.View(m.keys)
	case m.layoutMode == LayoutWide:
		content = m.renderSplit()
	case m.activePane < len(m.panes):
		content = m.panes[m.activePane].View()
	}

	content = lipgloss.NewStyle().Height(ContentHeight(m.height)).MaxHeight(ContentHeight(m.height)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderSplit() string {
	listW, _ := SplitWidths(m.width)
	h := ContentHeight(m.height)
	list := lipgloss.NewStyle().Width(listW).Height(h).MaxHeight(h).
		Render(m.panes[pane.PaneScenes].View())
	divider := theme.MutedStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, divider, m.panes[pane.PaneEditor].View())
}

// capturing reports whether the active pane owns the keyboard.
func (m Model) capturing() bool {
	if m.activePane >= len(m.panes) {
		return false
	}
	c, ok := m.panes[m.activePane].(pane.Capturer)
	return ok && c.Capturing()
}

// quit saves pending changes before exiting.
func (m Model) quit() tea.Cmd {
	if m.dirty && m.saver != nil {
		return tea.Sequence(autosave.SaveCmd(m.saver, m.shared), tea.Quit)
	}
	return tea.Quit
}

// handleKey processes global key bindings, forwarding unhandled keys
// to the active pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a pane is taking text or a confirmation, only ctrl+c is global.
	if m.capturing() {
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		return m.updateActivePane(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.activePane = (m.activePane + 1) % len(m.panes)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.activePane = (m.activePane - 1 + len(m.panes)) % len(m.panes)
		return m, nil

	case key.Matches(msg, m.keys.Pane1):
		m.activePane = int(pane.PaneScenes)
		return m, nil

	case key.Matches(msg, m.keys.Pane2):
		m.activePane = int(pane.PaneEditor)
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		if m.appMode == pane.ModeEdit {
			m.appMode = pane.ModeCopy
		} else {
			m.appMode = pane.ModeEdit
		}
		return m, tea.Batch(m.forwardToAllPanes(pane.AppModeMsg{Mode: m.appMode})...)
	}

	if m.showHelp {
		return m, nil
	}
	return m.updateActivePane(msg)
}

// handleMouse processes mouse events, detecting tab bar clicks and routing
// the rest to the pane under the pointer with pane-relative coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Y < TabBarHeight() {
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			if idx := m.tabAtX(msg.X); idx >= 0 {
				m.activePane = idx
			}
		}
		return m, nil
	}
	if m.showHelp || msg.Y >= TabBarHeight()+ContentHeight(m.height) {
		return m, nil
	}

	msg.Y -= TabBarHeight()
	if m.layoutMode == LayoutWide {
		listW, _ := SplitWidths(m.width)
		target := int(pane.PaneScenes)
		switch {
		case msg.X < listW:
		case msg.X == listW:
			return m, nil
		default:
			target = int(pane.PaneEditor)
			msg.X -= listW + 1
		}
		if m.capturing() && target != m.activePane {
			return m, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			m.activePane = target
		}
		return m.updatePane(target, msg)
	}

	return m.updateActivePane(msg)
}

// updateActivePane sends a message to the active pane and stores the result.
func (m Model) updateActivePane(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.updatePane(m.activePane, msg)
}

// updatePane sends a message to pane i and stores the result.
func (m Model) updatePane(i int, msg tea.Msg) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.panes) {
		return m, nil
	}
	newModel, cmd := m.panes[i].Update(msg)
	if newPane, ok := newModel.(pane.Pane); ok {
		m.panes[i] = newPane
	}
	return m, cmd
}

// forwardToAllPanes sends a message to every pane and collects commands.
func (m *Model) forwardToAllPanes(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for i, p := range m.panes {
		newModel, cmd := p.Update(msg)
		if newPane, ok := newModel.(pane.Pane); ok {
			m.panes[i] = newPane
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// ---------------------------------------------------------------------------
// Tab bar
// ---------------------------------------------------------------------------

// renderTabBar renders the tab bar across the top of the screen.
func (m Model) renderTabBar() string {
	var parts []string

	for i, p := range m.panes {
		label := m.tabLabel(p)
		style := theme.TabInactiveStyle
		if i == m.activePane {
			style = theme.TabActiveStyle.Underline(true)
		}
		parts = append(parts, style.Render(label))
	}

	if m.layoutMode != LayoutNarrow {
		sep := theme.MutedStyle.Render("|")
		return strings.Join(parts, " "+sep+" ")
	}
	return strings.Join(parts, "")
}

// tabLabel returns the display label for a pane tab in the current layout mode.
func (m Model) tabLabel(p pane.Pane) string {
	var label string
	switch m.layoutMode {
	case LayoutNarrow:
		label = p.ShortTitle()
	default:
		label = p.Title()
	}
	if badge := p.Badge(); badge > 0 {
		label += fmt.Sprintf("(%d)", badge)
	}
	return label
}

// tabAtX returns the pane index whose tab contains column x, or -1.
func (m Model) tabAtX(x int) int {
	pos := 0
	for i, p := range m.panes {
		if m.layoutMode != LayoutNarrow && i > 0 {
			pos += 1 + lipgloss.Width(theme.MutedStyle.Render("|")) + 1 // " | "
		}

		label := m.tabLabel(p)
		style := theme.TabInactiveStyle
		if i == m.activePane {
			style = theme.TabActiveStyle.Underline(true)
		}
		tabWidth := lipgloss.Width(style.Render(label))

		if x >= pos && x < pos+tabWidth {
			return i
		}
		pos += tabWidth
	}
	return -1
}

// ---------------------------------------------------------------------------
// Status bar
// ---------------------------------------------------------------------------

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	badge := theme.BadgeEdit
	if m.appMode == pane.ModeCopy {
		badge = theme.BadgeCopy
	}

	var idx, count int
	m.shared.Read(func(b *scene.Book) {
		idx, _ = b.Active()
		count = b.Len()
	})
	position := theme.MutedStyle.Render(fmt.Sprintf("scene %d/%d", idx+1, count))

	var saved string
	switch {
	case m.dirty:
		saved = theme.WarnStyle.Render("● unsaved")
	case m.lastSave.IsZero():
		saved = theme.MutedStyle.Render("✓ loaded")
	default:
		saved = theme.MutedStyle.Render("✓ saved " + pane.FormatAge(time.Since(m.lastSave)))
	}

	parts := []string{badge, position, saved}
	if m.flash != "" {
		style := theme.PassStyle
		if m.flashErr {
			style = theme.FailStyle
		}
		parts = append(parts, style.Render(m.flash))
	} else {
		parts = append(parts, theme.MutedStyle.Render("?=help  q=quit"))
	}

	bar := strings.Join(parts, "  |  ")
	return theme.StatusBarStyle.Width(m.width).MaxHeight(1).Render(bar)
}
