package scene

import "fmt"

// Scene is a named page of notes. It holds an ordered slot list for every
// mode of the catalog it was created with and tracks the active mode.
type Scene struct {
	title string
	mode  int
	slots [][]Slot
	cache *LayoutCache
}

// New creates a scene titled after ordinal, seeded with each mode's default
// slot count. Ordinals are not checked for uniqueness.
func New(ordinal int, cat *Catalog) *Scene {
	s := &Scene{
		title: fmt.Sprintf("New Scene %d", ordinal),
		slots: make([][]Slot, cat.Len()),
	}
	if cat.Len() > DefaultModeIndex {
		s.mode = DefaultModeIndex
	}
	for m, def := range cat.modes {
		s.slots[m] = seedSlots(def)
	}
	return s
}

func seedSlots(m Mode) []Slot {
	slots := make([]Slot, m.DefaultSlots)
	for i := range slots {
		slots[i] = newSlot(len(m.Judges))
	}
	return slots
}

// Title returns the scene title.
func (s *Scene) Title() string { return s.title }

// Mode returns the index of the active mode.
func (s *Scene) Mode() int { return s.mode }

// Rename replaces the title. Duplicate titles across scenes are allowed.
func (s *Scene) Rename(title string) error {
	if title == "" {
		return ErrInvalidTitle
	}
	s.title = title
	return nil
}

// SwitchMode activates mode m, shows the first judge of every slot in that
// mode and drops the layout cache.
func (s *Scene) SwitchMode(cat *Catalog, m int) error {
	if _, err := cat.judgeCount(m); err != nil {
		return err
	}
	if m >= len(s.slots) {
		return fmt.Errorf("scene has %d mode buckets, want %d: %w", len(s.slots), m+1, ErrOutOfRange)
	}
	s.mode = m
	for i := range s.slots[m] {
		s.slots[m][i].judge = 0
	}
	s.cache = nil
	return nil
}

// AppendSlot adds an empty slot to the active mode and drops the layout cache.
func (s *Scene) AppendSlot(cat *Catalog) error {
	n, err := cat.judgeCount(s.mode)
	if err != nil {
		return err
	}
	s.slots[s.mode] = append(s.slots[s.mode], newSlot(n))
	s.cache = nil
	return nil
}

// SelectJudge displays judge j of slot i in the active mode.
func (s *Scene) SelectJudge(cat *Catalog, i, j int) error {
	slot, err := s.slotAt(cat, i, j)
	if err != nil {
		return err
	}
	slot.judge = j
	return nil
}

// EditText stores text for judge j of slot i in the active mode.
func (s *Scene) EditText(cat *Catalog, i, j int, text string) error {
	slot, err := s.slotAt(cat, i, j)
	if err != nil {
		return err
	}
	slot.texts[j] = text
	return nil
}

// slotAt resolves (active mode, i, j) against the catalog rather than trusting
// the slot's own length.
func (s *Scene) slotAt(cat *Catalog, i, j int) (*Slot, error) {
	n, err := cat.judgeCount(s.mode)
	if err != nil {
		return nil, err
	}
	bucket := s.slots[s.mode]
	if i < 0 || i >= len(bucket) {
		return nil, fmt.Errorf("slot %d of %d: %w", i, len(bucket), ErrOutOfRange)
	}
	if j < 0 || j >= n {
		return nil, fmt.Errorf("judge %d of %d: %w", j, n, ErrOutOfRange)
	}
	if len(bucket[i].texts) != n {
		return nil, fmt.Errorf("slot %d holds %d texts for %d judges: %w",
			i, len(bucket[i].texts), n, ErrOutOfRange)
	}
	return &bucket[i], nil
}

// Slots returns copies of the slots of the active mode.
func (s *Scene) Slots() []Slot {
	return s.SlotsFor(s.mode)
}

// SlotsFor returns copies of the slots of mode m, or nil if m is unknown.
func (s *Scene) SlotsFor(m int) []Slot {
	if m < 0 || m >= len(s.slots) {
		return nil
	}
	out := make([]Slot, len(s.slots[m]))
	for i, sl := range s.slots[m] {
		out[i] = sl.clone()
	}
	return out
}

// SlotCount returns the number of slots in mode m.
func (s *Scene) SlotCount(m int) int {
	if m < 0 || m >= len(s.slots) {
		return 0
	}
	return len(s.slots[m])
}
