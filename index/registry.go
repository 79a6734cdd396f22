package index

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Error values for index operations.
var (
	ErrLocked   = errors.New("index locked")
	ErrClosed   = errors.New("index closed")
	ErrNotIndex = errors.New("path is not an index")
)

// shared is one open native index and its reference count.
type shared struct {
	path     string
	idx      bleve.Index
	refs     int
	writable bool
}

type registry struct {
	mu      sync.Mutex
	entries map[string]*shared
}

var openIndexes = &registry{entries: make(map[string]*shared)}

func absPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("index path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve index path %q: %w", path, err)
	}
	return abs, nil
}

// acquireExclusive opens a new native index with create. It fails if the
// path is already open in this process.
func (r *registry) acquireExclusive(path string, create func() (bleve.Index, error)) (*shared, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[path]; ok {
		return nil, fmt.Errorf("%w: %s is open in this process", ErrLocked, path)
	}
	idx, err := create()
	if err != nil {
		return nil, err
	}
	sh := &shared{path: path, idx: idx, refs: 1, writable: true}
	r.entries[path] = sh
	return sh, nil
}

// acquireShared returns the open index at path, opening it with open when
// the process does not have it yet.
func (r *registry) acquireShared(path string, open func() (bleve.Index, error)) (*shared, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sh, ok := r.entries[path]; ok {
		sh.refs++
		return sh, nil
	}
	idx, err := open()
	if err != nil {
		return nil, err
	}
	sh := &shared{path: path, idx: idx, refs: 1}
	r.entries[path] = sh
	return sh, nil
}

// release drops one reference and closes the native index with the last.
func (r *registry) release(sh *shared) error {
	r.mu.Lock()
	sh.refs--
	last := sh.refs == 0
	if last {
		delete(r.entries, sh.path)
	}
	r.mu.Unlock()

	if !last {
		return nil
	}
	if err := sh.idx.Close(); err != nil {
		return fmt.Errorf("close index %s: %w", sh.path, err)
	}
	return nil
}

// isOpen reports whether path has a live native index in this process.
func (r *registry) isOpen(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[path]
	return ok
}

// IsOpen reports whether the index at path is open in this process.
func IsOpen(path string) bool {
	abs, err := absPath(path)
	if err != nil {
		return false
	}
	return openIndexes.isOpen(abs)
}
