package scene

import "fmt"

// SlotRecord is the persisted form of a Slot.
type SlotRecord struct {
	Texts []string `yaml:"texts"`
	Judge int      `yaml:"judge,omitempty"`
	Label *string  `yaml:"label,omitempty"`
	Icon  *string  `yaml:"icon,omitempty"`
}

// SceneRecord is the persisted form of a Scene. Slots is indexed by mode.
type SceneRecord struct {
	Title string         `yaml:"title"`
	Mode  int            `yaml:"mode"`
	Slots [][]SlotRecord `yaml:"slots"`
}

// BookRecord is the persisted form of a Book.
type BookRecord struct {
	Scenes      []SceneRecord `yaml:"scenes"`
	Active      int           `yaml:"active"`
	NextOrdinal int           `yaml:"next_ordinal,omitempty"`
}

// Record returns a deep copy of the scene as plain data.
func (s *Scene) Record() SceneRecord {
	rec := SceneRecord{
		Title: s.title,
		Mode:  s.mode,
		Slots: make([][]SlotRecord, len(s.slots)),
	}
	for m, bucket := range s.slots {
		rec.Slots[m] = make([]SlotRecord, len(bucket))
		for i, sl := range bucket {
			c := sl.clone()
			rec.Slots[m][i] = SlotRecord{Texts: c.texts, Judge: c.judge, Label: c.Label, Icon: c.Icon}
		}
	}
	return rec
}

// Record returns a deep copy of the book as plain data.
func (b *Book) Record() BookRecord {
	rec := BookRecord{
		Scenes:      make([]SceneRecord, len(b.scenes)),
		Active:      b.active,
		NextOrdinal: b.nextOrdinal,
	}
	for i, s := range b.scenes {
		rec.Scenes[i] = s.Record()
	}
	return rec
}

// SceneFromRecord rebuilds a scene against cat. Fields missing from older
// records are defaulted: absent mode buckets are seeded like a new scene,
// short text lists are padded and an out of range judge or mode selection is
// reset. Records that contradict the catalog are rejected.
func SceneFromRecord(cat *Catalog, rec SceneRecord) (*Scene, error) {
	if rec.Title == "" {
		return nil, ErrInvalidTitle
	}
	if len(rec.Slots) > cat.Len() {
		return nil, fmt.Errorf("scene %q has %d mode buckets for %d modes", rec.Title, len(rec.Slots), cat.Len())
	}
	s := &Scene{title: rec.Title, mode: rec.Mode, slots: make([][]Slot, cat.Len())}
	if s.mode < 0 || s.mode >= cat.Len() {
		s.mode = 0
		if cat.Len() > DefaultModeIndex {
			s.mode = DefaultModeIndex
		}
	}
	for m, def := range cat.modes {
		if m >= len(rec.Slots) {
			s.slots[m] = seedSlots(def)
			continue
		}
		judges := len(def.Judges)
		bucket := make([]Slot, len(rec.Slots[m]))
		for i, sr := range rec.Slots[m] {
			if len(sr.Texts) > judges {
				return nil, fmt.Errorf("scene %q mode %q slot %d: %d texts for %d judges",
					rec.Title, def.Name, i, len(sr.Texts), judges)
			}
			sl := newSlot(judges)
			copy(sl.texts, sr.Texts)
			if sr.Judge >= 0 && sr.Judge < judges {
				sl.judge = sr.Judge
			}
			sl.Label, sl.Icon = sr.Label, sr.Icon
			bucket[i] = sl.clone()
		}
		s.slots[m] = bucket
	}
	return s, nil
}

// BookFromRecord rebuilds a book against cat. A record without scenes is
// rejected; the active index is clamped and a missing next ordinal is derived
// from the scene count.
func BookFromRecord(cat *Catalog, rec BookRecord) (*Book, error) {
	if len(rec.Scenes) == 0 {
		return nil, fmt.Errorf("book has no scenes")
	}
	b := &Book{cat: cat, scenes: make([]*Scene, len(rec.Scenes))}
	for i, sr := range rec.Scenes {
		s, err := SceneFromRecord(cat, sr)
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
		b.scenes[i] = s
	}
	b.active = rec.Active
	if b.active < 0 {
		b.active = 0
	}
	if b.active >= len(b.scenes) {
		b.active = len(b.scenes) - 1
	}
	b.nextOrdinal = rec.NextOrdinal
	if b.nextOrdinal <= 0 {
		b.nextOrdinal = len(b.scenes) + 1
	}
	return b, nil
}
