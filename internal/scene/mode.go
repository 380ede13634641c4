// Package scene holds the scene notes model: modes and their judges, scenes
// with per-mode slots, the layout cache, and the scene list selection state.
package scene

import (
	"fmt"
	"strings"
)

// DefaultModeIndex is the mode a freshly created scene starts in. Mode 0 is
// conventionally narration; new scenes open on the first check mode.
const DefaultModeIndex = 1

// Mode describes a category of scene: the judge outcomes a slot can hold text
// for and how many slots a new scene starts with.
type Mode struct {
	Name         string   `yaml:"name"`
	Judges       []string `yaml:"judges"`
	DefaultSlots int      `yaml:"default_slots"`
}

func (m Mode) clone() Mode {
	m.Judges = append([]string(nil), m.Judges...)
	return m
}

// Catalog is the read-only list of modes shared by every scene in a book.
type Catalog struct {
	modes []Mode
}

// NewCatalog validates and copies the given modes.
func NewCatalog(modes ...Mode) (*Catalog, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("catalog needs at least one mode")
	}
	c := &Catalog{modes: make([]Mode, len(modes))}
	for i, m := range modes {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("mode %d: name is required", i)
		}
		if len(m.Judges) == 0 {
			return nil, fmt.Errorf("mode %q: at least one judge is required", m.Name)
		}
		if m.DefaultSlots < 0 {
			return nil, fmt.Errorf("mode %q: default_slots must be >= 0", m.Name)
		}
		c.modes[i] = m.clone()
	}
	return c, nil
}

// DefaultCatalog returns the built-in narration and check modes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultModes()...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultModes returns a fresh copy of the built-in mode definitions.
func DefaultModes() []Mode {
	return []Mode{
		{Name: "Narration", Judges: []string{"Text"}, DefaultSlots: 1},
		{Name: "Check", Judges: []string{"Critical", "Success", "Failure", "Fumble"}, DefaultSlots: 4},
	}
}

// Len returns the number of modes.
func (c *Catalog) Len() int { return len(c.modes) }

// Lookup returns the mode at index i.
func (c *Catalog) Lookup(i int) (Mode, error) {
	if i < 0 || i >= len(c.modes) {
		return Mode{}, fmt.Errorf("mode %d of %d: %w", i, len(c.modes), ErrOutOfRange)
	}
	return c.modes[i].clone(), nil
}

// Modes returns a copy of every mode in catalog order.
func (c *Catalog) Modes() []Mode {
	out := make([]Mode, len(c.modes))
	for i, m := range c.modes {
		out[i] = m.clone()
	}
	return out
}

// Names returns the mode names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.modes))
	for i, m := range c.modes {
		names[i] = m.Name
	}
	return names
}

// judgeCount is Lookup without the copy, for internal bounds checks.
func (c *Catalog) judgeCount(i int) (int, error) {
	if i < 0 || i >= len(c.modes) {
		return 0, fmt.Errorf("mode %d of %d: %w", i, len(c.modes), ErrOutOfRange)
	}
	return len(c.modes[i].Judges), nil
}
