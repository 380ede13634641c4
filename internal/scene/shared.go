package scene

import "sync"

// Shared guards a book with a single writer lock. Every read and mutation
// of the book, including layout computation, runs under it.
type Shared struct {
	mu   sync.Mutex
	book *Book
}

// NewShared wraps b.
func NewShared(b *Book) *Shared {
	return &Shared{book: b}
}

// Update runs fn with exclusive access to the book.
func (s *Shared) Update(fn func(*Book) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.book)
}

// Read runs fn with exclusive access to the book. fn must not keep
// references to scenes after it returns.
func (s *Shared) Read(fn func(*Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.book)
}

// Catalog returns the immutable catalog; it needs no lock.
func (s *Shared) Catalog() *Catalog {
	return s.book.cat
}
