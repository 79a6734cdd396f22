package handle

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Error values for handle operations.
var (
	ErrUseAfterRelease = errors.New("use after release")
	ErrWrongKind       = errors.New("wrong handle kind")
	ErrNotFound        = errors.New("handle not found")
)

// Kind tags the resource type a handle wraps.
type Kind string

const (
	KindWriter   Kind = "writer"
	KindSearcher Kind = "searcher"
	KindHits     Kind = "hits"
)

// State is the lifecycle state of a handle.
type State int32

const (
	Live State = iota
	Released
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ReleaseFunc frees the resource. It runs at most once per handle.
type ReleaseFunc[T any] func(T) error

// Handle owns one native resource.
type Handle[T any] struct {
	kind    Kind
	state   atomic.Int32
	res     T
	release ReleaseFunc[T]

	once sync.Once
	err  error

	onRelease func(Kind)
}

// New wraps res in a Live handle. release may be nil for resources that need
// no cleanup.
func New[T any](kind Kind, res T, release ReleaseFunc[T]) *Handle[T] {
	return &Handle[T]{kind: kind, res: res, release: release}
}

// Kind returns the handle's type tag.
func (h *Handle[T]) Kind() Kind {
	return h.kind
}

// State returns the current lifecycle state.
func (h *Handle[T]) State() State {
	return State(h.state.Load())
}

// Live reports whether the handle has not been released.
func (h *Handle[T]) Live() bool {
	return h.State() == Live
}

// Get returns the wrapped resource, or ErrUseAfterRelease.
func (h *Handle[T]) Get() (T, error) {
	if h == nil || !h.Live() {
		var zero T
		return zero, h.useAfterRelease()
	}
	return h.res, nil
}

func (h *Handle[T]) useAfterRelease() error {
	if h == nil {
		return ErrUseAfterRelease
	}
	return fmt.Errorf("%w: %s handle", ErrUseAfterRelease, h.kind)
}

// OnRelease registers fn to run after the release routine. It must be
// called before the handle is shared.
func (h *Handle[T]) OnRelease(fn func(Kind)) {
	h.onRelease = fn
}

// Release transitions the handle to Released and runs the release routine.
// Later calls return the first call's error without freeing again.
func (h *Handle[T]) Release() error {
	if h == nil {
		return nil
	}
	h.once.Do(func() {
		h.state.Store(int32(Released))
		res := h.res
		var zero T
		h.res = zero
		if h.release != nil {
			h.err = h.release(res)
		}
		if h.onRelease != nil {
			h.onRelease(h.kind)
		}
	})
	return h.err
}

// Finalize releases h when owner becomes unreachable. owner is the
// host-visible wrapper and must not be reachable from h.
func Finalize[T any, O any](owner *O, h *Handle[T]) {
	runtime.AddCleanup(owner, func(h *Handle[T]) {
		_ = h.Release()
	}, h)
}
