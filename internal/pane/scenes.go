package pane

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/tnguyen21/scenebook/internal/scene"
	"github.com/tnguyen21/scenebook/internal/theme"
)

// scenesHeaderRows is the number of rows above the first scene row.
const scenesHeaderRows = 1

// ScenesPane lists every scene and manages adding, renaming, deleting and
// jumping between them.
type ScenesPane struct {
	shared *scene.Shared
	width  int
	height int
	offset int // first visible row of the list

	rename  textinput.Model
	pending scene.Pending // this session's open rename or delete

	filtering    bool
	filter       textinput.Model
	matches      []int // scene indices matching the filter, best first
	filterCursor int

	keys KeyMap
}

// NewScenesPane creates the scene list pane over sh.
func NewScenesPane(sh *scene.Shared) *ScenesPane {
	rename := textinput.New()
	rename.Placeholder = "Scene title"
	rename.CharLimit = 120

	filter := textinput.New()
	filter.Placeholder = "Jump to scene…"
	filter.CharLimit = 64

	return &ScenesPane{
		shared: sh,
		rename: rename,
		filter: filter,
		keys:   DefaultKeyMap(),
	}
}

func (p *ScenesPane) ID() PaneID         { return PaneScenes }
func (p *ScenesPane) Title() string      { return "Scenes" }
func (p *ScenesPane) ShortTitle() string { return "☰" }

// Badge shows the scene count.
func (p *ScenesPane) Badge() int {
	n := 0
	p.shared.Read(func(b *scene.Book) { n = b.Len() })
	return n
}

func (p *ScenesPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	inputWidth := w - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	p.rename.Width = inputWidth
	p.filter.Width = inputWidth
}

func (p *ScenesPane) Init() tea.Cmd { return nil }

// Capturing reports whether a dialog or the filter owns the keyboard.
func (p *ScenesPane) Capturing() bool {
	return p.filtering || p.pending.Open()
}

func (p *ScenesPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BookChangedMsg:
		if p.filtering {
			p.refilter()
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.MouseMsg:
		return p.handleMouse(msg)
	}

	return p, nil
}

func (p *ScenesPane) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch p.pending.Intent {
	case scene.IntentRename:
		return p.handleRenameKey(msg)
	case scene.IntentDelete:
		return p.handleDeleteKey(msg)
	}
	if p.filtering {
		return p.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		return p, p.step(+1)

	case key.Matches(msg, p.keys.Down):
		return p, p.step(-1)

	case key.Matches(msg, p.keys.Add):
		var title string
		_ = p.shared.Update(func(b *scene.Book) error {
			title = b.Add().Title()
			return nil
		})
		return p, tea.Batch(changed, flash("Added "+title))

	case key.Matches(msg, p.keys.Rename):
		var title string
		p.shared.Read(func(b *scene.Book) {
			p.pending = b.BeginRename()
			title = p.pending.Target.Title()
		})
		p.rename.SetValue(title)
		p.rename.CursorEnd()
		return p, p.rename.Focus()

	case key.Matches(msg, p.keys.Delete):
		err := p.shared.Update(func(b *scene.Book) error {
			pend, err := b.BeginDelete()
			p.pending = pend
			return err
		})
		if err != nil {
			return p, flashErr(err)
		}
		return p, nil

	case key.Matches(msg, p.keys.Filter):
		p.filtering = true
		p.filter.SetValue("")
		p.refilter()
		return p, p.filter.Focus()
	}
	return p, nil
}

// step moves the active scene the way a wheel delta would.
func (p *ScenesPane) step(delta float64) tea.Cmd {
	moved := false
	err := p.shared.Update(func(b *scene.Book) error {
		cur, _ := b.Active()
		next := scene.StepOnScroll(cur, b.Len(), delta)
		moved = next != cur
		return b.Select(next)
	})
	if err != nil {
		return flashErr(err)
	}
	if !moved {
		return nil
	}
	return changed
}

func (p *ScenesPane) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(p.rename.Value())
		pend := p.pending
		err := p.shared.Update(func(b *scene.Book) error { return b.ConfirmRename(pend, title) })
		if err != nil {
			// A deleted target cannot be retried; an invalid title can.
			if errors.Is(err, scene.ErrSceneGone) {
				p.closeRename()
			}
			return p, flashErr(err)
		}
		p.closeRename()
		return p, tea.Batch(changed, flash("Renamed to "+title))
	case tea.KeyEsc:
		p.closeRename()
		return p, nil
	}

	var cmd tea.Cmd
	p.rename, cmd = p.rename.Update(msg)
	return p, cmd
}

func (p *ScenesPane) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Confirm):
		var title string
		pend := p.pending
		p.pending = scene.Pending{}
		err := p.shared.Update(func(b *scene.Book) error {
			title = pend.Target.Title()
			return b.ConfirmDelete(pend)
		})
		if err != nil {
			return p, flashErr(err)
		}
		return p, tea.Batch(changed, flash("Deleted "+title))
	case key.Matches(msg, p.keys.Deny):
		p.pending = scene.Pending{}
		return p, nil
	}
	return p, nil
}

func (p *ScenesPane) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.closeFilter()
		return p, nil
	case tea.KeyEnter:
		if p.filterCursor < len(p.matches) {
			target := p.matches[p.filterCursor]
			p.closeFilter()
			if err := p.shared.Update(func(b *scene.Book) error { return b.Select(target) }); err != nil {
				return p, flashErr(err)
			}
			return p, changed
		}
		p.closeFilter()
		return p, nil
	case tea.KeyUp:
		if p.filterCursor > 0 {
			p.filterCursor--
		}
		return p, nil
	case tea.KeyDown:
		if p.filterCursor < len(p.matches)-1 {
			p.filterCursor++
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return p, cmd
}

func (p *ScenesPane) closeRename() {
	p.pending = scene.Pending{}
	p.rename.Blur()
}

func (p *ScenesPane) closeFilter() {
	p.filtering = false
	p.filter.Blur()
	p.matches = nil
	p.filterCursor = 0
}

// refilter recomputes matches for the current query. An empty query matches
// every scene in list order.
func (p *ScenesPane) refilter() {
	var titles []string
	p.shared.Read(func(b *scene.Book) { titles = b.Titles() })

	query := strings.TrimSpace(p.filter.Value())
	p.matches = p.matches[:0]
	if query == "" {
		for i := range titles {
			p.matches = append(p.matches, i)
		}
	} else {
		for _, m := range fuzzy.Find(query, titles) {
			p.matches = append(p.matches, m.Index)
		}
	}
	if p.filterCursor >= len(p.matches) {
		p.filterCursor = 0
	}
}

func (p *ScenesPane) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if p.Capturing() {
		return p, nil
	}
	if delta := wheelDelta(msg); delta != 0 {
		return p, p.step(delta)
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		row := msg.Y - scenesHeaderRows + p.offset
		if row < 0 {
			return p, nil
		}
		if err := p.shared.Update(func(b *scene.Book) error { return b.Select(row) }); err != nil {
			return p, nil
		}
		return p, changed
	}
	return p, nil
}

// View renders the scene list, plus the filter or an open dialog.
func (p *ScenesPane) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	var (
		titles []string
		active int
		target string
	)
	p.shared.Read(func(b *scene.Book) {
		titles = b.Titles()
		active, _ = b.Active()
		if p.pending.Open() {
			target = p.pending.Target.Title()
		}
	})

	var b strings.Builder
	b.WriteString(theme.PaneHeaderStyle.Render(TruncateWithEllipsis("─── SCENES ───", p.width)))
	b.WriteString("\n")

	footer := p.renderFooter(target)
	listRows := p.height - scenesHeaderRows - lineCount(footer)
	if listRows < 1 {
		listRows = 1
	}

	if p.filtering {
		b.WriteString(p.renderMatches(titles, listRows))
	} else {
		b.WriteString(p.renderList(titles, active, listRows))
	}
	b.WriteString(footer)
	return b.String()
}

func (p *ScenesPane) renderList(titles []string, active, rows int) string {
	if active < p.offset {
		p.offset = active
	}
	if active >= p.offset+rows {
		p.offset = active - rows + 1
	}
	if p.offset > len(titles)-rows {
		p.offset = len(titles) - rows
	}
	if p.offset < 0 {
		p.offset = 0
	}

	var b strings.Builder
	for i := p.offset; i < len(titles) && i < p.offset+rows; i++ {
		b.WriteString(p.renderRow(titles[i], i == active))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *ScenesPane) renderMatches(titles []string, rows int) string {
	var b strings.Builder
	b.WriteString(theme.AccentStyle.Render("/ ") + p.filter.View())
	b.WriteString("\n")
	if len(p.matches) == 0 {
		b.WriteString(theme.MutedStyle.Render("  no matching scenes"))
		b.WriteString("\n")
		return b.String()
	}
	for i, idx := range p.matches {
		if i >= rows-1 {
			break
		}
		b.WriteString(p.renderRow(titles[idx], i == p.filterCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *ScenesPane) renderRow(title string, selected bool) string {
	label := TruncateWithEllipsis(title, p.width-4)
	if selected {
		return theme.SceneActiveRowStyle.Render(theme.Cursor + " " + label)
	}
	return theme.SceneRowStyle.Render("  " + label)
}

func (p *ScenesPane) renderFooter(target string) string {
	switch p.pending.Intent {
	case scene.IntentRename:
		body := "Rename scene\n" + p.rename.View() + "\n" +
			theme.MutedStyle.Render("enter save  esc cancel")
		return theme.DialogStyle.Render(body)
	case scene.IntentDelete:
		body := fmt.Sprintf("Delete %q?\n", TruncateWithEllipsis(target, p.width-14)) +
			theme.MutedStyle.Render("y delete  n cancel")
		return theme.DialogDangerStyle.Render(body)
	}
	if p.filtering {
		return theme.MutedStyle.Render(TruncateWithEllipsis("↑/↓ choose  enter jump  esc close", p.width))
	}
	return theme.MutedStyle.Render(TruncateWithEllipsis("a add  r rename  d delete  / filter", p.width))
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// Ensure ScenesPane implements Pane and Capturer at compile time.
var (
	_ Pane     = (*ScenesPane)(nil)
	_ Capturer = (*ScenesPane)(nil)
)
