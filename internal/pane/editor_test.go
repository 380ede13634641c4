package pane

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/scenebook/internal/scene"
)

func activeScene(sh *scene.Shared) (mode int, slots []scene.Slot) {
	sh.Read(func(b *scene.Book) {
		_, s := b.Active()
		mode = s.Mode()
		slots = s.Slots()
	})
	return mode, slots
}

func TestNewEditorPane(t *testing.T) {
	p := NewEditorPane(newTestShared(t, 1))
	if p.ID() != PaneEditor {
		t.Errorf("ID() = %d, want %d", p.ID(), PaneEditor)
	}
	if p.Title() != "Editor" {
		t.Errorf("Title() = %q, want %q", p.Title(), "Editor")
	}
	// New scenes start in Check with four slots.
	if p.Badge() != 4 {
		t.Errorf("Badge() = %d, want 4", p.Badge())
	}
}

func TestEditorPaneView(t *testing.T) {
	p := NewEditorPane(newTestShared(t, 2))
	p.SetSize(60, 24)

	view := p.View()
	for _, want := range []string{"New Scene 2", "Check", "Critical", "(empty)", "add slot", "2/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
	if len(p.spans) != 4 {
		t.Errorf("rendered %d slots, want 4", len(p.spans))
	}
}

func TestEditorPaneViewCopyModeHidesAddRow(t *testing.T) {
	p := NewEditorPane(newTestShared(t, 1))
	p.SetSize(60, 24)
	p.Update(AppModeMsg{Mode: ModeCopy})

	if strings.Contains(p.View(), "add slot") {
		t.Error("copy mode should not offer the add-slot row")
	}
	if p.addLine != -1 {
		t.Errorf("addLine = %d, want -1", p.addLine)
	}
}

func TestEditorPaneFocusAndJudge(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)

	p.Update(keyRunes("j"))
	p.Update(keyRunes("j"))
	if p.Focus() != 2 {
		t.Fatalf("Focus() = %d, want 2", p.Focus())
	}

	_, cmd := p.Update(keyRunes("l"))
	if !hasChanged(drain(cmd)) {
		t.Error("judge change should emit BookChangedMsg")
	}
	_, slots := activeScene(sh)
	if slots[2].Judge() != 1 {
		t.Errorf("slot 2 judge = %d, want 1", slots[2].Judge())
	}

	p.Update(keyRunes("h"))
	_, cmd = p.Update(keyRunes("h"))
	if cmd != nil {
		t.Error("stepping before the first judge should do nothing")
	}
	_, slots = activeScene(sh)
	if slots[2].Judge() != 0 {
		t.Errorf("slot 2 judge = %d, want 0", slots[2].Judge())
	}
}

func TestEditorPaneSwitchModeResetsJudges(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)

	p.Update(keyRunes("l"))
	p.Update(keyRunes("M"))
	mode, slots := activeScene(sh)
	if mode != 0 || len(slots) != 1 {
		t.Fatalf("after M: mode = %d slots = %d, want 0 and 1", mode, len(slots))
	}

	_, cmd := p.Update(keyRunes("m"))
	if !hasChanged(drain(cmd)) {
		t.Error("mode switch should emit BookChangedMsg")
	}
	mode, slots = activeScene(sh)
	if mode != 1 {
		t.Fatalf("after m: mode = %d, want 1", mode)
	}
	if slots[0].Judge() != 0 {
		t.Errorf("judge after mode switch = %d, want 0", slots[0].Judge())
	}

	_, cmd = p.Update(keyRunes("m"))
	if cmd != nil {
		t.Error("stepping past the last mode should do nothing")
	}
}

func TestEditorPaneSwitchScene(t *testing.T) {
	sh := newTestShared(t, 3)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)
	p.focus = 2

	_, cmd := p.Update(keyRunes("]"))
	if !hasChanged(drain(cmd)) {
		t.Error("scene switch should emit BookChangedMsg")
	}
	if activeIndex(sh) != 1 {
		t.Errorf("after ]: active = %d, want 1", activeIndex(sh))
	}
	if p.Focus() != 0 {
		t.Errorf("focus after scene switch = %d, want 0", p.Focus())
	}

	p.Update(keyRunes("["))
	p.Update(keyRunes("["))
	if activeIndex(sh) != 0 {
		t.Errorf("after [[: active = %d, want 0", activeIndex(sh))
	}
}

func TestEditorPaneAddSlot(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)
	p.View()

	_, cmd := p.Update(keyRunes("+"))
	if !hasChanged(drain(cmd)) {
		t.Error("adding a slot should emit BookChangedMsg")
	}
	if p.Badge() != 5 || p.Focus() != 4 {
		t.Errorf("after +: slots = %d focus = %d, want 5 and 4", p.Badge(), p.Focus())
	}
	var cached bool
	sh.Read(func(b *scene.Book) {
		_, s := b.Active()
		_, cached = s.Cache()
	})
	if cached {
		t.Error("adding a slot should drop the layout cache")
	}

	p.Update(AppModeMsg{Mode: ModeCopy})
	if _, cmd := p.Update(keyRunes("+")); cmd != nil {
		t.Error("copy mode should not add slots")
	}
	if p.Badge() != 5 {
		t.Errorf("slots = %d, want 5", p.Badge())
	}
}

func TestEditorPaneEditText(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)

	p.Update(keyRunes("j"))
	p.Update(keyRunes("l"))
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.Capturing() {
		t.Fatal("enter in edit mode should open the editor")
	}
	if !strings.Contains(p.View(), "Slot 2 · Success") {
		t.Error("View should name the slot and judge being edited")
	}

	p.editor.SetValue("The lock clicks open.")
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msgs := drain(cmd)
	if !hasChanged(msgs) {
		t.Error("saving should emit BookChangedMsg")
	}
	if p.Capturing() {
		t.Error("editor should close after saving")
	}

	_, slots := activeScene(sh)
	got, _ := slots[1].Text(1)
	if got != "The lock clicks open." {
		t.Errorf("slot 1 judge 1 = %q", got)
	}
	if other, _ := slots[1].Text(0); other != "" {
		t.Errorf("other judges should be untouched, got %q", other)
	}
	if !strings.Contains(p.View(), "The lock clicks open.") {
		t.Error("View should show the saved text")
	}
}

func TestEditorPaneEditCancel(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 24)

	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.editor.SetValue("draft")
	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Capturing() {
		t.Error("esc should close the editor")
	}
	_, slots := activeScene(sh)
	if slots[0].Shown() != "" {
		t.Errorf("cancelled edit was stored: %q", slots[0].Shown())
	}
}

// sceneSlotText reads the first judge of slot 0 of scene i in mode m.
func sceneSlotText(t *testing.T, sh *scene.Shared, i, m int) string {
	t.Helper()
	var (
		text string
		err  error
	)
	sh.Read(func(b *scene.Book) {
		var s *scene.Scene
		if s, err = b.Scene(i); err != nil {
			return
		}
		slots := s.SlotsFor(m)
		if len(slots) == 0 {
			err = scene.ErrOutOfRange
			return
		}
		text, err = slots[0].Text(0)
	})
	if err != nil {
		t.Fatalf("scene %d slot 0: %v", i, err)
	}
	return text
}

func TestEditorPaneSaveKeepsItsScene(t *testing.T) {
	sh := newTestShared(t, 2)
	a := NewEditorPane(sh)
	b := NewEditorPane(sh)
	a.SetSize(60, 24)
	b.SetSize(60, 24)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !a.Capturing() {
		t.Fatal("enter should open the editor")
	}
	b.Update(keyRunes("]"))
	if activeIndex(sh) != 1 {
		t.Fatalf("active = %d, want 1", activeIndex(sh))
	}

	a.editor.SetValue("meant for scene 0")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !hasChanged(drain(cmd)) {
		t.Error("saving should emit BookChangedMsg")
	}
	if got := sceneSlotText(t, sh, 0, scene.DefaultModeIndex); got != "meant for scene 0" {
		t.Errorf("scene 0 slot 0 = %q, want the saved text", got)
	}
	if got := sceneSlotText(t, sh, 1, scene.DefaultModeIndex); got != "" {
		t.Errorf("scene 1 slot 0 = %q, want empty", got)
	}
}

func TestEditorPaneSaveRefused(t *testing.T) {
	tests := []struct {
		name      string
		disturb   func(t *testing.T, sh *scene.Shared, other *EditorPane)
		wantErr   error
		untouched int // index, after disturb, of a scene that must stay untouched
	}{
		{
			name: "mode switched",
			disturb: func(t *testing.T, sh *scene.Shared, other *EditorPane) {
				other.Update(keyRunes("M"))
			},
			wantErr:   scene.ErrModeChanged,
			untouched: 0,
		},
		{
			name: "scene deleted",
			disturb: func(t *testing.T, sh *scene.Shared, other *EditorPane) {
				if err := sh.Update(func(b *scene.Book) error { return b.Delete(0) }); err != nil {
					t.Fatalf("Delete(0): %v", err)
				}
			},
			wantErr:   scene.ErrSceneGone,
			untouched: 0, // the survivor, formerly scene 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := newTestShared(t, 2)
			a := NewEditorPane(sh)
			b := NewEditorPane(sh)
			a.SetSize(60, 24)
			b.SetSize(60, 24)

			a.Update(tea.KeyMsg{Type: tea.KeyEnter})
			tt.disturb(t, sh, b)

			a.editor.SetValue("stale draft")
			_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
			msgs := drain(cmd)
			f, ok := flashOf(msgs)
			if !ok || !f.Err || f.Text != tt.wantErr.Error() {
				t.Errorf("flash = %+v, want %q error", f, tt.wantErr)
			}
			if hasChanged(msgs) {
				t.Error("refused save should not emit BookChangedMsg")
			}
			if a.Capturing() {
				t.Error("editor should close after a refused save")
			}
			if got := sceneSlotText(t, sh, tt.untouched, scene.DefaultModeIndex); got != "" {
				t.Errorf("scene %d slot 0 = %q, want untouched", tt.untouched, got)
			}
		})
	}
}

func TestEditorPaneCopy(t *testing.T) {
	sh := newTestShared(t, 1)
	sh.Update(func(b *scene.Book) error {
		_, s := b.Active()
		return s.EditText(b.Catalog(), 0, 0, "Critical hit!")
	})

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	p := NewEditorPane(sh)
	p.SetSize(60, 24)
	p.Update(AppModeMsg{Mode: ModeCopy})

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f, ok := flashOf(drain(cmd))
	if !ok || f.Text != "Copied" {
		t.Errorf("flash = %+v, want Copied", f)
	}
	if copied != "Critical hit!" {
		t.Errorf("copied %q, want %q", copied, "Critical hit!")
	}
	if p.Capturing() {
		t.Error("copy mode should not open the editor")
	}
}

func TestEditorPaneCopyError(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboard = orig })

	p := NewEditorPane(newTestShared(t, 1))
	p.Update(AppModeMsg{Mode: ModeCopy})

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f, ok := flashOf(drain(cmd))
	if !ok || !f.Err || !strings.Contains(f.Text, "no clipboard") {
		t.Errorf("flash = %+v, want clipboard error", f)
	}
}

func TestEditorPaneMouseWheel(t *testing.T) {
	sh := newTestShared(t, 3)
	sh.Update(func(b *scene.Book) error { return b.Select(1) })
	p := NewEditorPane(sh)
	p.SetSize(60, 30)
	p.View()

	wheelDown := func(y int) tea.MouseMsg {
		return tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Y: y}
	}
	wheelUp := func(y int) tea.MouseMsg {
		return tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress, Y: y}
	}

	p.Update(wheelDown(rowSceneSelector))
	if activeIndex(sh) != 2 {
		t.Errorf("wheel down on scene row: active = %d, want 2", activeIndex(sh))
	}
	p.Update(wheelUp(rowSceneSelector))
	if activeIndex(sh) != 1 {
		t.Errorf("wheel up on scene row: active = %d, want 1", activeIndex(sh))
	}

	p.Update(wheelUp(rowModeSelector))
	if mode, _ := activeScene(sh); mode != 0 {
		t.Errorf("wheel up on mode row: mode = %d, want 0", mode)
	}
	p.Update(wheelDown(rowModeSelector))
	if mode, _ := activeScene(sh); mode != 1 {
		t.Errorf("wheel down on mode row: mode = %d, want 1", mode)
	}

	p.View()
	slotY := editorHeaderRows + p.spans[3].start
	p.Update(wheelDown(slotY))
	p.Update(wheelDown(slotY))
	_, slots := activeScene(sh)
	if slots[3].Judge() != 2 {
		t.Errorf("wheel on slot 3: judge = %d, want 2", slots[3].Judge())
	}
	if slots[0].Judge() != 0 {
		t.Errorf("other slots should keep their judge, got %d", slots[0].Judge())
	}
}

func TestEditorPaneMouseClick(t *testing.T) {
	sh := newTestShared(t, 1)
	p := NewEditorPane(sh)
	p.SetSize(60, 30)
	p.View()

	click := func(y int) tea.MouseMsg {
		return tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, X: 10, Y: y}
	}

	p.Update(click(editorHeaderRows + p.spans[2].start))
	if p.Focus() != 2 {
		t.Errorf("click on slot 2: focus = %d, want 2", p.Focus())
	}

	_, cmd := p.Update(click(editorHeaderRows + p.addLine))
	if !hasChanged(drain(cmd)) {
		t.Error("clicking the add row should emit BookChangedMsg")
	}
	if p.Badge() != 5 {
		t.Errorf("slots = %d, want 5", p.Badge())
	}
}

func TestMeasureSlot(t *testing.T) {
	measure := measureSlot([]string{"Critical", "Success", "Failure", "Fumble"})

	jw, iw := measure(scene.Slot{})
	if jw != 10 || iw != 0 {
		t.Errorf("plain slot = (%v, %v), want (10, 0)", jw, iw)
	}

	icon, label := "⚔", "Attack"
	jw, iw = measure(scene.Slot{Icon: &icon, Label: &label})
	if jw != 10 || iw != 7 {
		t.Errorf("icon+label slot = (%v, %v), want (10, 7)", jw, iw)
	}
}
