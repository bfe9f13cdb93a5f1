// Package collection is the generic state layer behind every screen of the
// application: an in-memory entity store, a searched/filtered projection, a
// draft form with a commit lifecycle, and the screen controller composing
// the three over an abstract data source.
package collection

import (
	"sync"
)

// Store holds the authoritative in-memory sequence of entities for one
// category. Identifiers are owned by the store: a monotonic counter that
// Load advances past the highest seeded id, so a deleted id is never handed
// out again. Every mutation rebuilds the backing slice and Items hands out
// copies, so callers can compare snapshots by identity.
type Store[T any] struct {
	mu     sync.Mutex
	items  []T
	id     func(T) int64
	withID func(T, int64) T
	nextID int64
}

func NewStore[T any](id func(T) int64, withID func(T, int64) T) *Store[T] {
	return &Store[T]{
		id:     id,
		withID: withID,
		nextID: 1,
	}
}

// Load replaces the full collection, typically once after the initial fetch.
func (s *Store[T]) Load(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]T, len(items))
	copy(s.items, items)

	for _, item := range items {
		if id := s.id(item); id >= s.nextID {
			s.nextID = id + 1
		}
	}
}

// Insert appends the item. An id of zero means "assign the next one"; a
// non-zero id (from a backend create) is kept and the counter advanced.
func (s *Store[T]) Insert(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	item = s.claim(item)
	s.items = append(s.snapshot(), item)
	return item
}

// Prepend is Insert at the head, for screens that show newest first.
func (s *Store[T]) Prepend(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	item = s.claim(item)
	s.items = append([]T{item}, s.snapshot()...)
	return item
}

func (s *Store[T]) claim(item T) T {
	if id := s.id(item); id != 0 {
		if id >= s.nextID {
			s.nextID = id + 1
		}
		return item
	}
	item = s.withID(item, s.nextID)
	s.nextID++
	return item
}

// Update replaces the element with the given id in place. Unknown ids are a
// no-op.
func (s *Store[T]) Update(id int64, patch func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	for i, item := range next {
		if s.id(item) == id {
			next[i] = s.withID(patch(item), id)
			s.items = next
			return
		}
	}
}

// Remove filters the element out. Unknown ids are a no-op, so removing
// twice is safe.
func (s *Store[T]) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.id(item) != id {
			next = append(next, item)
		}
	}
	s.items = next
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a fresh copy of the collection in insertion order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// snapshot must be called with the mutex held.
func (s *Store[T]) snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
