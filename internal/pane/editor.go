package pane

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tnguyen21/scenebook/internal/scene"
	"github.com/tnguyen21/scenebook/internal/theme"
)

// Editor rows above the slot list.
const (
	rowSceneSelector = 0
	rowModeSelector  = 1
	editorHeaderRows = 3
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// slotSpan is the first viewport line and height of one rendered slot.
type slotSpan struct {
	start, height int
}

// EditorPane shows the active scene: a scene selector, a mode selector and
// the slot list of the active mode.
type EditorPane struct {
	shared *scene.Shared
	width  int
	height int
	keys   KeyMap
	mode   AppMode

	focus    int // focused slot in the active mode
	sceneIdx int // active scene at the last refresh

	vp      viewport.Model
	spans   []slotSpan
	addLine int // viewport line of the add-slot row, -1 when hidden

	editing   bool
	editScene *scene.Scene // scene the open editor writes to
	editMode  int          // its mode when the editor opened
	editSlot  int
	editJudge int
	editor    textarea.Model
}

// NewEditorPane creates the editor pane over sh.
func NewEditorPane(sh *scene.Shared) *EditorPane {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Placeholder = "Slot text"

	return &EditorPane{
		shared:  sh,
		keys:    DefaultKeyMap(),
		vp:      viewport.New(0, 0),
		editor:  ta,
		addLine: -1,
	}
}

func (p *EditorPane) ID() PaneID         { return PaneEditor }
func (p *EditorPane) Title() string      { return "Editor" }
func (p *EditorPane) ShortTitle() string { return "✎" }

// Badge shows how many slots the active mode holds.
func (p *EditorPane) Badge() int {
	n := 0
	p.shared.Read(func(b *scene.Book) {
		_, s := b.Active()
		n = s.SlotCount(s.Mode())
	})
	return n
}

func (p *EditorPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.editor.SetWidth(max(w-4, 10))
	p.editor.SetHeight(5)
	p.resizeViewport()
}

func (p *EditorPane) resizeViewport() {
	h := p.height - editorHeaderRows - 1
	if p.editing {
		h -= p.editor.Height() + 3
	}
	p.vp.Width = p.width
	p.vp.Height = max(h, 1)
}

func (p *EditorPane) Init() tea.Cmd { return nil }

// Capturing reports whether the text editor is open.
func (p *EditorPane) Capturing() bool { return p.editing }

// Focus returns the focused slot index.
func (p *EditorPane) Focus() int { return p.focus }

func (p *EditorPane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppModeMsg:
		p.mode = msg.Mode
		return p, nil

	case BookChangedMsg:
		p.refresh()
		return p, nil

	case tea.KeyMsg:
		if p.editing {
			return p.handleEditorKey(msg)
		}
		return p.handleKey(msg)

	case tea.MouseMsg:
		if p.editing {
			return p, nil
		}
		return p.handleMouse(msg)
	}
	return p, nil
}

func (p *EditorPane) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.focus > 0 {
			p.focus--
		}
		return p, nil

	case key.Matches(msg, p.keys.Down):
		if p.focus < p.slotCount()-1 {
			p.focus++
		}
		return p, nil

	case key.Matches(msg, p.keys.Left):
		return p, p.stepJudge(p.focus, +1)

	case key.Matches(msg, p.keys.Right):
		return p, p.stepJudge(p.focus, -1)

	case key.Matches(msg, p.keys.PrevScene):
		return p, p.stepScene(+1)

	case key.Matches(msg, p.keys.NextScene):
		return p, p.stepScene(-1)

	case key.Matches(msg, p.keys.NextMode):
		return p, p.stepMode(-1)

	case key.Matches(msg, p.keys.PrevMode):
		return p, p.stepMode(+1)

	case key.Matches(msg, p.keys.AddSlot):
		return p, p.appendSlot()

	case key.Matches(msg, p.keys.Select):
		if p.mode == ModeCopy {
			return p, p.copySlot(p.focus)
		}
		return p, p.openEditor(p.focus)
	}
	return p, nil
}

func (p *EditorPane) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Save):
		text := p.editor.Value()
		target, mode := p.editScene, p.editMode
		slot, judge := p.editSlot, p.editJudge
		err := p.shared.Update(func(b *scene.Book) error {
			if _, err := b.IndexOf(target); err != nil {
				return err
			}
			if target.Mode() != mode {
				return scene.ErrModeChanged
			}
			return target.EditText(b.Catalog(), slot, judge, text)
		})
		p.closeEditor()
		if err != nil {
			return p, flashErr(err)
		}
		return p, tea.Batch(changed, flash("Slot saved"))

	case key.Matches(msg, p.keys.Back):
		p.closeEditor()
		return p, nil
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

func (p *EditorPane) openEditor(i int) tea.Cmd {
	var (
		target *scene.Scene
		text   string
		judge  int
		err    error
	)
	p.shared.Read(func(b *scene.Book) {
		_, target = b.Active()
		slots := target.Slots()
		if i < 0 || i >= len(slots) {
			err = fmt.Errorf("slot %d of %d: %w", i, len(slots), scene.ErrOutOfRange)
			return
		}
		judge = slots[i].Judge()
		text, err = slots[i].Text(judge)
	})
	if err != nil {
		return flashErr(err)
	}
	p.editing = true
	p.editScene = target
	p.editMode = target.Mode()
	p.editSlot = i
	p.editJudge = judge
	p.editor.SetValue(text)
	p.resizeViewport()
	return p.editor.Focus()
}

func (p *EditorPane) closeEditor() {
	p.editing = false
	p.editScene = nil
	p.editor.Blur()
	p.editor.Reset()
	p.resizeViewport()
}

func (p *EditorPane) copySlot(i int) tea.Cmd {
	var text string
	ok := false
	p.shared.Read(func(b *scene.Book) {
		_, s := b.Active()
		slots := s.Slots()
		if i >= 0 && i < len(slots) {
			text = slots[i].Shown()
			ok = true
		}
	})
	if !ok {
		return nil
	}
	if err := copyToClipboard(text); err != nil {
		return flashErr(fmt.Errorf("copy: %w", err))
	}
	return flash("Copied")
}

func (p *EditorPane) appendSlot() tea.Cmd {
	if p.mode != ModeEdit {
		return nil
	}
	var n int
	err := p.shared.Update(func(b *scene.Book) error {
		_, s := b.Active()
		if err := s.AppendSlot(b.Catalog()); err != nil {
			return err
		}
		n = s.SlotCount(s.Mode())
		return nil
	})
	if err != nil {
		return flashErr(err)
	}
	p.focus = n - 1
	return changed
}

// stepScene moves the book selection like a wheel event on the scene selector.
func (p *EditorPane) stepScene(delta float64) tea.Cmd {
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
	p.focus = 0
	return changed
}

// stepMode switches the active scene's mode like a wheel event on the mode
// selector. Switching always resets judges and the layout cache.
func (p *EditorPane) stepMode(delta float64) tea.Cmd {
	moved := false
	err := p.shared.Update(func(b *scene.Book) error {
		_, s := b.Active()
		next := scene.StepOnScroll(s.Mode(), b.Catalog().Len(), delta)
		if next == s.Mode() {
			return nil
		}
		moved = true
		return s.SwitchMode(b.Catalog(), next)
	})
	if err != nil {
		return flashErr(err)
	}
	if !moved {
		return nil
	}
	p.focus = 0
	return changed
}

// stepJudge moves the displayed judge of slot i like a wheel event on it.
func (p *EditorPane) stepJudge(i int, delta float64) tea.Cmd {
	moved := false
	err := p.shared.Update(func(b *scene.Book) error {
		_, s := b.Active()
		slots := s.Slots()
		if i < 0 || i >= len(slots) {
			return nil
		}
		cur := slots[i].Judge()
		next := scene.StepOnScroll(cur, slots[i].Len(), delta)
		if next == cur {
			return nil
		}
		moved = true
		return s.SelectJudge(b.Catalog(), i, next)
	})
	if err != nil {
		return flashErr(err)
	}
	if !moved {
		return nil
	}
	return changed
}

func (p *EditorPane) slotCount() int {
	n := 0
	p.shared.Read(func(b *scene.Book) {
		_, s := b.Active()
		n = s.SlotCount(s.Mode())
	})
	return n
}

func (p *EditorPane) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	delta := wheelDelta(msg)
	click := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress

	switch msg.Y {
	case rowSceneSelector:
		if delta != 0 {
			return p, p.stepScene(delta)
		}
		if click {
			return p, p.clickSelector(msg.X, p.stepScene)
		}
		return p, nil
	case rowModeSelector:
		if delta != 0 {
			return p, p.stepMode(delta)
		}
		if click {
			return p, p.clickSelector(msg.X, p.stepMode)
		}
		return p, nil
	}

	line := msg.Y - editorHeaderRows
	if line < 0 || line >= p.vp.Height {
		return p, nil
	}
	line += p.vp.YOffset

	if slot := p.slotAtLine(line); slot >= 0 {
		if delta != 0 {
			return p, p.stepJudge(slot, delta)
		}
		if click {
			p.focus = slot
		}
		return p, nil
	}
	if click && line == p.addLine {
		return p, p.appendSlot()
	}
	if delta != 0 {
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return p, cmd
	}
	return p, nil
}

// clickSelector treats a click on the left arrow as a step back and a click
// anywhere right of it as a step forward.
func (p *EditorPane) clickSelector(x int, step func(float64) tea.Cmd) tea.Cmd {
	if x < runewidth.StringWidth(theme.ArrowPrev)+2 {
		return step(+1)
	}
	return step(-1)
}

func (p *EditorPane) slotAtLine(line int) int {
	for i, sp := range p.spans {
		if line >= sp.start && line < sp.start+sp.height {
			return i
		}
	}
	return -1
}

// measureSlot builds the width function for a mode. The judge column fits the
// widest judge name of the mode; the icon column fits the icon or label.
func measureSlot(judges []string) scene.WidthFunc {
	widest := 0
	for _, j := range judges {
		widest = max(widest, runewidth.StringWidth(j))
	}
	return func(sl scene.Slot) (float64, float64) {
		icon := 0
		if sl.Icon != nil {
			icon = runewidth.StringWidth(*sl.Icon)
		}
		if sl.Label != nil {
			icon = max(icon, runewidth.StringWidth(*sl.Label))
		}
		if icon > 0 {
			icon++
		}
		return float64(widest + 2), float64(icon)
	}
}

// editorView is everything refresh reads from the book in one pass.
type editorView struct {
	title    string
	index    int
	count    int
	modeName string
	judges   []string
	slots    []scene.Slot
	judgeW   int
	iconW    int
}

func (p *EditorPane) snapshot() editorView {
	var v editorView
	p.shared.Read(func(b *scene.Book) {
		i, s := b.Active()
		v.index = i
		v.count = b.Len()
		v.title = s.Title()
		mode, err := b.Catalog().Lookup(s.Mode())
		if err != nil {
			return
		}
		v.modeName = mode.Name
		v.judges = mode.Judges
		v.slots = s.Slots()
		jw, iw := s.Layout(measureSlot(mode.Judges))
		v.judgeW = int(jw)
		v.iconW = int(iw)
	})
	return v
}

// refresh re-renders the slot list into the viewport and keeps the focused
// slot on screen.
func (p *EditorPane) refresh() editorView {
	v := p.snapshot()
	if v.index != p.sceneIdx {
		p.sceneIdx = v.index
		p.focus = 0
	}
	if p.focus >= len(v.slots) {
		p.focus = len(v.slots) - 1
	}
	if p.focus < 0 {
		p.focus = 0
	}

	var (
		lines []string
		spans = make([]slotSpan, 0, len(v.slots))
	)
	for i, sl := range v.slots {
		block := p.renderSlot(v, i, sl)
		h := lipgloss.Height(block)
		spans = append(spans, slotSpan{start: len(lines), height: h})
		lines = append(lines, strings.Split(block, "\n")...)
	}
	p.spans = spans

	p.addLine = -1
	if p.mode == ModeEdit {
		p.addLine = len(lines)
		indent := strings.Repeat(" ", v.judgeW+v.iconW)
		lines = append(lines, indent+theme.AccentStyle.Render(theme.AddSlot+" add slot"))
	}

	p.vp.SetContent(strings.Join(lines, "\n"))
	if p.focus < len(spans) {
		sp := spans[p.focus]
		if sp.start < p.vp.YOffset {
			p.vp.SetYOffset(sp.start)
		} else if end := sp.start + sp.height; end > p.vp.YOffset+p.vp.Height {
			p.vp.SetYOffset(end - p.vp.Height)
		}
	}
	return v
}

func (p *EditorPane) renderSlot(v editorView, i int, sl scene.Slot) string {
	focused := i == p.focus

	judgeName := ""
	if j := sl.Judge(); j >= 0 && j < len(v.judges) {
		judgeName = v.judges[j]
	}
	judgeStyle := theme.JudgeStyle
	if focused {
		judgeStyle = theme.JudgeSelectedStyle
	}
	cols := []string{judgeStyle.Width(v.judgeW).Render(judgeName)}

	if v.iconW > 0 {
		icon := ""
		switch {
		case sl.Icon != nil:
			icon = *sl.Icon
		case sl.Label != nil:
			icon = *sl.Label
		}
		cols = append(cols, theme.IconStyle.Width(v.iconW).Render(icon))
	}

	text := sl.Shown()
	textStyle := theme.SlotTextStyle
	if focused {
		textStyle = theme.SlotFocusedTextStyle
	}
	if text == "" {
		text = theme.MutedStyle.Render("(empty)")
	}
	textW := max(p.width-v.judgeW-v.iconW-textStyle.GetHorizontalFrameSize(), 1)
	cols = append(cols, textStyle.Width(textW).Render(text))

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (p *EditorPane) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	v := p.refresh()

	var b strings.Builder
	counter := theme.MutedStyle.Render(fmt.Sprintf(" %d/%d", v.index+1, v.count))
	b.WriteString(p.renderSelector(v.title, p.width-lipgloss.Width(counter)) + counter)
	b.WriteString("\n")
	b.WriteString(p.renderSelector(v.modeName, p.width))
	b.WriteString("\n\n")
	b.WriteString(p.vp.View())
	b.WriteString("\n")

	if p.editing {
		judge := ""
		if p.editJudge < len(v.judges) {
			judge = v.judges[p.editJudge]
		}
		header := fmt.Sprintf("Slot %d · %s", p.editSlot+1, judge)
		body := header + "\n" + p.editor.View() + "\n" +
			theme.MutedStyle.Render("ctrl+s save  esc cancel")
		b.WriteString(theme.DialogStyle.Render(body))
		return b.String()
	}

	hint := "j/k slot  h/l judge  [/] scene  m/M mode  + add  enter edit"
	if p.mode == ModeCopy {
		hint = "j/k slot  h/l judge  [/] scene  m/M mode  enter copy"
	}
	b.WriteString(theme.MutedStyle.Render(TruncateWithEllipsis(hint, p.width)))
	return b.String()
}

func (p *EditorPane) renderSelector(label string, width int) string {
	inner := max(width-runewidth.StringWidth(theme.ArrowPrev)-runewidth.StringWidth(theme.ArrowNext)-4, 1)
	label = runewidth.Truncate(label, inner, "…")
	return theme.SelectorStyle.Render(theme.ArrowPrev + " " + label + " " + theme.ArrowNext)
}

// Ensure EditorPane implements Pane and Capturer at compile time.
var (
	_ Pane     = (*EditorPane)(nil)
	_ Capturer = (*EditorPane)(nil)
)
