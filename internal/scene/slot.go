package scene

import "fmt"

// Slot is one content unit of a scene under a particular mode. It keeps one
// text per judge of that mode and remembers which judge is displayed.
//
// Label and Icon are optional display attributes. Nothing sets them yet; they
// round-trip through snapshots and widen the icon column when present.
type Slot struct {
	texts []string
	judge int

	Label *string
	Icon  *string
}

func newSlot(judges int) Slot {
	return Slot{texts: make([]string, judges)}
}

// Judge returns the index of the displayed judge.
func (s Slot) Judge() int { return s.judge }

// Len returns the number of judge texts the slot holds.
func (s Slot) Len() int { return len(s.texts) }

// Text returns the text stored for judge j.
func (s Slot) Text(j int) (string, error) {
	if j < 0 || j >= len(s.texts) {
		return "", fmt.Errorf("judge %d of %d: %w", j, len(s.texts), ErrOutOfRange)
	}
	return s.texts[j], nil
}

// Shown returns the text of the displayed judge.
func (s Slot) Shown() string {
	if s.judge < 0 || s.judge >= len(s.texts) {
		return ""
	}
	return s.texts[s.judge]
}

func (s Slot) clone() Slot {
	s.texts = append([]string(nil), s.texts...)
	if s.Label != nil {
		v := *s.Label
		s.Label = &v
	}
	if s.Icon != nil {
		v := *s.Icon
		s.Icon = &v
	}
	return s
}
