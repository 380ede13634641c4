package scene

import (
	"errors"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(
		Mode{Name: "Narration", Judges: []string{"Text"}, DefaultSlots: 1},
		Mode{Name: "Check", Judges: []string{"Crit", "Success", "Fail", "Fumble"}, DefaultSlots: 4},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

// checkShape asserts every slot holds exactly one text per judge of its mode.
func checkShape(t *testing.T, cat *Catalog, s *Scene) {
	t.Helper()
	if len(s.slots) != cat.Len() {
		t.Fatalf("mode buckets = %d, want %d", len(s.slots), cat.Len())
	}
	for m, bucket := range s.slots {
		want := len(cat.modes[m].Judges)
		for i, sl := range bucket {
			if sl.Len() != want {
				t.Errorf("mode %d slot %d: %d texts, want %d", m, i, sl.Len(), want)
			}
			if sl.Judge() >= sl.Len() {
				t.Errorf("mode %d slot %d: judge %d out of %d", m, i, sl.Judge(), sl.Len())
			}
		}
	}
}

func TestNewScene(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)

	if s.Title() != "New Scene 1" {
		t.Errorf("Title() = %q, want %q", s.Title(), "New Scene 1")
	}
	if s.Mode() != 1 {
		t.Errorf("Mode() = %d, want 1", s.Mode())
	}
	if got := s.SlotCount(0); got != 1 {
		t.Errorf("SlotCount(0) = %d, want 1", got)
	}
	if got := s.SlotCount(1); got != 4 {
		t.Errorf("SlotCount(1) = %d, want 4", got)
	}
	for _, sl := range s.Slots() {
		for j := 0; j < sl.Len(); j++ {
			if text, _ := sl.Text(j); text != "" {
				t.Errorf("new slot text %d = %q, want empty", j, text)
			}
		}
	}
	if _, ok := s.Cache(); ok {
		t.Error("new scene should have no layout cache")
	}
	checkShape(t, cat, s)
}

func TestNewSceneSingleModeCatalog(t *testing.T) {
	cat, err := NewCatalog(Mode{Name: "Only", Judges: []string{"A", "B"}, DefaultSlots: 2})
	if err != nil {
		t.Fatal(err)
	}
	s := New(3, cat)
	if s.Mode() != 0 {
		t.Errorf("Mode() = %d, want 0 for a single-mode catalog", s.Mode())
	}
	checkShape(t, cat, s)
}

func TestRename(t *testing.T) {
	s := New(1, testCatalog(t))

	if err := s.Rename(""); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("Rename(\"\") err = %v, want ErrInvalidTitle", err)
	}
	if s.Title() != "New Scene 1" {
		t.Errorf("failed rename changed title to %q", s.Title())
	}
	if err := s.Rename("Chapter 2"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if s.Title() != "Chapter 2" {
		t.Errorf("Title() = %q, want %q", s.Title(), "Chapter 2")
	}
}

func TestSwitchMode(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)

	if err := s.SelectJudge(cat, 2, 3); err != nil {
		t.Fatal(err)
	}
	s.Layout(func(Slot) (float64, float64) { return 1, 1 })

	if err := s.SwitchMode(cat, 0); err != nil {
		t.Fatalf("SwitchMode(0): %v", err)
	}
	if s.Mode() != 0 {
		t.Errorf("Mode() = %d, want 0", s.Mode())
	}
	if _, ok := s.Cache(); ok {
		t.Error("cache should be cleared after a mode switch")
	}

	if err := s.SwitchMode(cat, 1); err != nil {
		t.Fatal(err)
	}
	for i, sl := range s.Slots() {
		if sl.Judge() != 0 {
			t.Errorf("slot %d judge = %d after switch, want 0", i, sl.Judge())
		}
	}
}

func TestSwitchModeOutOfRange(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)

	for _, m := range []int{2, 10, -1} {
		if err := s.SwitchMode(cat, m); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SwitchMode(%d) err = %v, want ErrOutOfRange", m, err)
		}
	}
	if s.Mode() != 1 {
		t.Errorf("failed switch changed mode to %d", s.Mode())
	}
}

func TestSwitchModeIdempotentOnCache(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)
	s.Layout(func(Slot) (float64, float64) { return 3, 4 })

	for i := 0; i < 2; i++ {
		if err := s.SwitchMode(cat, 1); err != nil {
			t.Fatal(err)
		}
		if _, ok := s.Cache(); ok {
			t.Fatalf("switch %d: cache should be invalid", i+1)
		}
	}
}

func TestAppendSlot(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)
	s.Layout(func(Slot) (float64, float64) { return 2, 0 })

	if err := s.AppendSlot(cat); err != nil {
		t.Fatalf("AppendSlot: %v", err)
	}
	if _, ok := s.Cache(); ok {
		t.Error("cache tagged for the same mode must be gone after AppendSlot")
	}
	if got := s.SlotCount(1); got != 5 {
		t.Errorf("SlotCount(1) = %d, want 5", got)
	}
	if got := s.SlotCount(0); got != 1 {
		t.Errorf("SlotCount(0) = %d, want 1 (other mode untouched)", got)
	}
	checkShape(t, cat, s)

	if err := s.SwitchMode(cat, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendSlot(cat); err != nil {
		t.Fatal(err)
	}
	if got := s.Slots()[1].Len(); got != 1 {
		t.Errorf("narration slot texts = %d, want 1", got)
	}
	checkShape(t, cat, s)
}

func TestSlotCountsOnlyGrow(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)
	prev := []int{s.SlotCount(0), s.SlotCount(1)}

	steps := []func() error{
		func() error { return s.AppendSlot(cat) },
		func() error { return s.SwitchMode(cat, 0) },
		func() error { return s.AppendSlot(cat) },
		func() error { return s.SelectJudge(cat, 0, 0) },
		func() error { return s.EditText(cat, 1, 0, "x") },
		func() error { return s.SwitchMode(cat, 1) },
		func() error { return s.AppendSlot(cat) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		for m := range prev {
			if got := s.SlotCount(m); got < prev[m] {
				t.Fatalf("step %d: mode %d shrank from %d to %d", i, m, prev[m], got)
			}
			prev[m] = s.SlotCount(m)
		}
		checkShape(t, cat, s)
	}
}

func TestSelectJudge(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)
	s.Layout(func(Slot) (float64, float64) { return 5, 1 })

	if err := s.SelectJudge(cat, 1, 2); err != nil {
		t.Fatalf("SelectJudge: %v", err)
	}
	if got := s.Slots()[1].Judge(); got != 2 {
		t.Errorf("judge = %d, want 2", got)
	}
	if _, ok := s.Cache(); !ok {
		t.Error("judge selection should keep the layout cache")
	}

	tests := []struct {
		name        string
		slot, judge int
	}{
		{"slot past end", 4, 0},
		{"negative slot", -1, 0},
		{"judge past end", 0, 4},
		{"negative judge", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SelectJudge(cat, tt.slot, tt.judge); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("err = %v, want ErrOutOfRange", err)
			}
		})
	}
	if got := s.Slots()[1].Judge(); got != 2 {
		t.Errorf("failed selections changed judge to %d", got)
	}
}

func TestEditText(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)

	if err := s.EditText(cat, 0, 3, "The rope snaps."); err != nil {
		t.Fatalf("EditText: %v", err)
	}
	sl := s.Slots()[0]
	if text, _ := sl.Text(3); text != "The rope snaps." {
		t.Errorf("Text(3) = %q", text)
	}
	if sl.Shown() != "" {
		t.Errorf("Shown() = %q, want text of judge 0", sl.Shown())
	}
	if err := s.SelectJudge(cat, 0, 3); err != nil {
		t.Fatal(err)
	}
	if got := s.Slots()[0].Shown(); got != "The rope snaps." {
		t.Errorf("Shown() = %q after selecting judge 3", got)
	}

	if err := s.EditText(cat, 9, 0, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("EditText bad slot err = %v, want ErrOutOfRange", err)
	}
	if err := s.EditText(cat, 0, 4, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("EditText bad judge err = %v, want ErrOutOfRange", err)
	}
}

func TestSlotsReturnsCopies(t *testing.T) {
	cat := testCatalog(t)
	s := New(1, cat)

	slots := s.Slots()
	slots[0].texts[0] = "mutated"
	if text, _ := s.Slots()[0].Text(0); text != "" {
		t.Errorf("Slots() leaked internal storage: %q", text)
	}
}
