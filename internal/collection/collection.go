// Package collection provides the in-memory record collection shared by the
// knowledge and project catalogs: an owned sequence replaced wholesale,
// frequency tables and ordered views derived from it on every call.
package collection

import "sync"

// Collection holds an ordered sequence of records. The zero value is empty
// and ready to use.
//
// Readers always observe a complete snapshot: SetItems swaps the whole
// sequence, it never merges.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
}

// New returns a collection holding a copy of items.
func New[T any](items []T) *Collection[T] {
	c := &Collection[T]{}
	c.SetItems(items)
	return c
}

// SetItems replaces the current content with a copy of items.
func (c *Collection[T]) SetItems(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)

	c.mu.Lock()
	c.items = cp
	c.mu.Unlock()
}

// Items returns a copy of the current sequence in stored order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Find returns the first record, in stored order, that satisfies match.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records satisfying match, in stored order. The result
// is never nil.
func (c *Collection[T]) Filter(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []T{}
	for _, it := range c.items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Top returns a sorted copy of the collection truncated to n records.
// The stored order is left untouched.
func (c *Collection[T]) Top(n int, cmp func(a, b T) int) []T {
	items := c.Items()
	SortStable(items, cmp, Asc)
	return Limit(items, n)
}
