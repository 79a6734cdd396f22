package facade

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/handle"
	"github.com/jonwraymond/luacene/index"
	"github.com/jonwraymond/luacene/metrics"
)

// Operation names used in errors, logs, and metrics.
const (
	OpOpenWriter   = "openWriter"
	OpOpenSearcher = "openSearcher"
	OpAddDocument  = "addDocument"
	OpFlush        = "flush"
	OpOptimize     = "optimize"
	OpSearch       = "search"
	OpHitAt        = "hitAt"
	OpCount        = "count"
	OpRelease      = "release"
)

// Options configures an Engine.
type Options struct {
	// Codec converts host strings. If nil, uses codec.Process().
	Codec *codec.Codec

	// Logger receives lifecycle events. If nil, uses zap.NewNop().
	Logger *zap.Logger

	// Metrics records operations. Nil disables metrics.
	Metrics *metrics.Metrics

	// Index configures writers and readers. Index.Logger defaults to
	// Logger.
	Index index.Options
}

// Engine carries the process-wide dependencies of facade operations.
type Engine struct {
	codec   codec.Codec
	log     *zap.Logger
	metrics *metrics.Metrics
	index   index.Options
}

// New creates an Engine with the given options.
func New(opts Options) (*Engine, error) {
	e := &Engine{
		log:     opts.Logger,
		metrics: opts.Metrics,
		index:   opts.Index,
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if opts.Codec != nil {
		e.codec = *opts.Codec
	} else {
		e.codec = codec.Process()
	}
	if e.index.Logger == nil {
		e.index.Logger = e.log
	}
	e.log.Debug("engine created", zap.String("charset", e.codec.Charset()))
	return e, nil
}

// Codec returns the codec applied to host strings.
func (e *Engine) Codec() codec.Codec {
	return e.codec
}

// guard runs one native operation. Panics and native errors become
// *NativeFailure; host input errors pass through.
func (e *Engine) guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicFailure(op, r)
		}
		err = classify(op, err)
		if err != nil && !hostError(err) {
			e.log.Warn("native failure", zap.String("op", op), zap.Error(err))
		}
		e.metrics.ObserveOperation(op, err)
	}()
	return fn()
}

// classify wraps native errors as *NativeFailure and passes host errors
// through.
func classify(op string, err error) error {
	if err == nil || hostError(err) {
		return err
	}
	var nf *NativeFailure
	if errors.As(err, &nf) {
		return err
	}
	return nativeFailure(op, err)
}

// release observes only the Live->Released transition. Later calls return
// the first call's result without logging or counting it again.
func release[T any](e *Engine, h *handle.Handle[T]) error {
	if !h.Live() {
		return classify(OpRelease, h.Release())
	}
	return e.guard(OpRelease, h.Release)
}

// track counts h in the live handle gauge until it is released.
func track[T any](e *Engine, h *handle.Handle[T]) *handle.Handle[T] {
	kind := string(h.Kind())
	e.metrics.HandleOpened(kind)
	h.OnRelease(func(k handle.Kind) {
		e.metrics.HandleReleased(string(k))
		e.log.Debug("handle released", zap.String("kind", string(k)))
	})
	return h
}
