package handle

import (
	"fmt"
	"sort"
	"sync"
)

// Releaser is any handle that can be released.
type Releaser interface {
	Kind() Kind
	Release() error
}

// Table maps opaque string IDs to handles.
type Table struct {
	mu      sync.Mutex
	next    map[Kind]uint64
	entries map[string]Releaser
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		next:    make(map[Kind]uint64),
		entries: make(map[string]Releaser),
	}
}

// Put registers h and returns its ID, e.g. "writer-1".
func (t *Table) Put(h Releaser) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next[h.Kind()]++
	id := fmt.Sprintf("%s-%d", h.Kind(), t.next[h.Kind()])
	t.entries[id] = h
	return id
}

// Lookup returns the handle for id if it has the expected kind.
func Lookup[H Releaser](t *Table, id string, kind Kind) (H, error) {
	var zero H
	t.mu.Lock()
	h, ok := t.entries[id]
	t.mu.Unlock()
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if h.Kind() != kind {
		return zero, fmt.Errorf("%w: %q is a %s handle, want %s", ErrWrongKind, id, h.Kind(), kind)
	}
	typed, ok := h.(H)
	if !ok {
		return zero, fmt.Errorf("%w: %q has type %T", ErrWrongKind, id, h)
	}
	return typed, nil
}

// Release releases and forgets the handle for id. Releasing an unknown ID
// returns ErrNotFound.
func (t *Table) Release(id string) error {
	t.mu.Lock()
	h, ok := t.entries[id]
	delete(t.entries, id)
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return h.Release()
}

// IDs returns the registered IDs in sorted order.
func (t *Table) IDs() []string {
	t.mu.Lock()
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	t.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Close releases every handle. Hit sets go first, writers last, so a writer
// flushes after readers of the same index have let go. The first error is
// returned; all handles are released regardless.
func (t *Table) Close() error {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[string]Releaser)
	t.mu.Unlock()

	order := map[Kind]int{KindHits: 0, KindSearcher: 1, KindWriter: 2}
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := entries[ids[i]], entries[ids[j]]
		if order[a.Kind()] != order[b.Kind()] {
			return order[a.Kind()] < order[b.Kind()]
		}
		return ids[i] < ids[j]
	})

	var first error
	for _, id := range ids {
		if err := entries[id].Release(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
