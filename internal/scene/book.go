package scene

import "fmt"

// Intent is a pending scene-level action awaiting confirmation.
type Intent int

const (
	IntentNone Intent = iota
	IntentRename
	IntentDelete
)

// Pending records which scene a rename or delete dialog is acting on. Each
// session keeps its own; the book only resolves it on confirm, so a scene
// that moved keeps its intent and one that was deleted refuses it.
type Pending struct {
	Intent Intent
	Target *Scene
}

// Open reports whether an intent is waiting for confirmation.
func (p Pending) Open() bool { return p.Intent != IntentNone }

// Book is the ordered scene list with its active selection. It never
// becomes empty.
type Book struct {
	cat         *Catalog
	scenes      []*Scene
	active      int
	nextOrdinal int
}

// NewBook returns a book holding one fresh scene.
func NewBook(cat *Catalog) *Book {
	b := &Book{cat: cat, nextOrdinal: 1}
	b.Add()
	return b
}

// Catalog returns the mode catalog the book's scenes are shaped by.
func (b *Book) Catalog() *Catalog { return b.cat }

// Len returns the number of scenes.
func (b *Book) Len() int { return len(b.scenes) }

// Active returns the active index and scene.
func (b *Book) Active() (int, *Scene) {
	return b.active, b.scenes[b.active]
}

// Scene returns the scene at index i.
func (b *Book) Scene(i int) (*Scene, error) {
	if i < 0 || i >= len(b.scenes) {
		return nil, fmt.Errorf("scene %d of %d: %w", i, len(b.scenes), ErrOutOfRange)
	}
	return b.scenes[i], nil
}

// Titles returns every scene title in order.
func (b *Book) Titles() []string {
	titles := make([]string, len(b.scenes))
	for i, s := range b.scenes {
		titles[i] = s.title
	}
	return titles
}

// IndexOf returns the current index of s, or ErrSceneGone once it has been
// deleted.
func (b *Book) IndexOf(s *Scene) (int, error) {
	for i, sc := range b.scenes {
		if sc == s {
			return i, nil
		}
	}
	return -1, ErrSceneGone
}

// NextOrdinal returns the ordinal the next added scene will be titled with.
func (b *Book) NextOrdinal() int { return b.nextOrdinal }

// Select makes scene i active.
func (b *Book) Select(i int) error {
	if i < 0 || i >= len(b.scenes) {
		return fmt.Errorf("scene %d of %d: %w", i, len(b.scenes), ErrOutOfRange)
	}
	b.active = i
	return nil
}

// Add appends a new scene, selects it and returns it.
func (b *Book) Add() *Scene {
	s := New(b.nextOrdinal, b.cat)
	b.nextOrdinal++
	b.scenes = append(b.scenes, s)
	b.active = len(b.scenes) - 1
	return s
}

// Rename renames scene i.
func (b *Book) Rename(i int, title string) error {
	s, err := b.Scene(i)
	if err != nil {
		return err
	}
	return s.Rename(title)
}

// Delete removes scene i. The active index then steps back by one, floored
// at zero, whichever side of it the removed scene was on.
func (b *Book) Delete(i int) error {
	if len(b.scenes) <= 1 {
		return ErrLastScene
	}
	if i < 0 || i >= len(b.scenes) {
		return fmt.Errorf("scene %d of %d: %w", i, len(b.scenes), ErrOutOfRange)
	}
	b.scenes = append(b.scenes[:i], b.scenes[i+1:]...)
	if b.active > 0 {
		b.active--
	}
	if b.active >= len(b.scenes) {
		b.active = len(b.scenes) - 1
	}
	return nil
}

// BeginRename opens a rename of the active scene.
func (b *Book) BeginRename() Pending {
	return Pending{Intent: IntentRename, Target: b.scenes[b.active]}
}

// BeginDelete opens a delete of the active scene. It is refused while only
// one scene exists.
func (b *Book) BeginDelete() (Pending, error) {
	if len(b.scenes) <= 1 {
		return Pending{}, ErrLastScene
	}
	return Pending{Intent: IntentDelete, Target: b.scenes[b.active]}, nil
}

// ConfirmRename applies p with title. The caller keeps p open on error so an
// invalid title can be retried.
func (b *Book) ConfirmRename(p Pending, title string) error {
	if p.Intent != IntentRename {
		return fmt.Errorf("no rename pending")
	}
	if _, err := b.IndexOf(p.Target); err != nil {
		return err
	}
	return p.Target.Rename(title)
}

// ConfirmDelete applies p, wherever its scene sits in the list now.
func (b *Book) ConfirmDelete(p Pending) error {
	if p.Intent != IntentDelete {
		return fmt.Errorf("no delete pending")
	}
	i, err := b.IndexOf(p.Target)
	if err != nil {
		return err
	}
	return b.Delete(i)
}
