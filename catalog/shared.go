package catalog

import "sync"

// Shared is a lock-protected ordered catalog handle
// The package owns it; every match holds the same pointer and never copies entries
// Readers hold RLock for the duration of a step; Replace runs between steps
type Shared[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewShared wraps items in a shared handle, taking ownership of the slice
func NewShared[T any](items []T) *Shared[T] {
	return &Shared[T]{items: items}
}

// RLock acquires read access and returns the live slice
// The slice must not be retained or mutated after RUnlock
func (s *Shared[T]) RLock() []T {
	s.mu.RLock()
	return s.items
}

// RUnlock releases read access acquired by RLock
func (s *Shared[T]) RUnlock() {
	s.mu.RUnlock()
}

// Len returns the number of entries
func (s *Shared[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns a copy of entry i and whether it exists
func (s *Shared[T]) Get(i int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Replace swaps the catalog contents under the write lock
// Matches index entries by position; shrinking below a running match's selection
// makes its next step panic
func (s *Shared[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}
