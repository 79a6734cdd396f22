package index

import (
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/document"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultMaxBufferedDocs = 1000
	DefaultLockTimeout     = time.Second
)

// Options configures writers and readers.
type Options struct {
	// MaxBufferedDocs commits the pending batch once it holds this many
	// documents. Default: 1000.
	MaxBufferedDocs int

	// LockTimeout bounds how long opening waits for another process's
	// lock. Default: 1s.
	LockTimeout time.Duration

	// DefaultField is the field unqualified queries search.
	// Default: "contents".
	DefaultField string

	// Logger receives lifecycle events. Default: no-op.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxBufferedDocs <= 0 {
		o.MaxBufferedDocs = DefaultMaxBufferedDocs
	}
	if o.LockTimeout <= 0 {
		o.LockTimeout = DefaultLockTimeout
	}
	if o.DefaultField == "" {
		o.DefaultField = document.DefaultField
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
