package facade

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/document"
	"github.com/jonwraymond/luacene/handle"
	"github.com/jonwraymond/luacene/index"
)

// Writer is a handle on an index writer. The index is created fresh when
// the writer opens.
type Writer struct {
	e    *Engine
	h    *handle.Handle[*index.Writer]
	path string
}

// OpenWriter creates an index at path, replacing any index already there.
func (e *Engine) OpenWriter(path string) (*Writer, error) {
	var iw *index.Writer
	err := e.guard(OpOpenWriter, func() error {
		var err error
		iw, err = index.Create(path, e.index)
		return err
	})
	if err != nil {
		return nil, err
	}

	w := &Writer{
		e:    e,
		h:    track(e, handle.New(handle.KindWriter, iw, (*index.Writer).Close)),
		path: iw.Path(),
	}
	handle.Finalize(w, w.h)
	e.log.Debug("writer opened", zap.String("path", w.path))
	return w, nil
}

// Path returns the absolute index path.
func (w *Writer) Path() string {
	return w.path
}

// Kind returns handle.KindWriter.
func (w *Writer) Kind() handle.Kind {
	return handle.KindWriter
}

// Live reports whether the writer has not been released.
func (w *Writer) Live() bool {
	return w.h.Live()
}

// AddDocument parses m and buffers it in the writer. Schema and option
// errors leave the index unchanged.
func (w *Writer) AddDocument(m document.Mapping) error {
	return w.e.guard(OpAddDocument, func() error {
		iw, err := w.h.Get()
		if err != nil {
			return err
		}
		doc, err := document.Parse(m, w.e.codec)
		if err != nil {
			return err
		}
		if _, err := iw.Add(doc); err != nil {
			return err
		}
		w.e.metrics.DocumentAdded()
		return nil
	})
}

// Flush commits buffered documents so searchers on the same path see them.
func (w *Writer) Flush() error {
	return w.e.guard(OpFlush, func() error {
		iw, err := w.h.Get()
		if err != nil {
			return err
		}
		return iw.Flush()
	})
}

// Optimize flushes and merges the index into a single segment.
func (w *Writer) Optimize(ctx context.Context) error {
	return w.e.guard(OpOptimize, func() error {
		iw, err := w.h.Get()
		if err != nil {
			return err
		}
		return iw.Optimize(ctx)
	})
}

// DocCount returns the number of committed documents.
func (w *Writer) DocCount() (uint64, error) {
	var n uint64
	err := w.e.guard(OpCount, func() error {
		iw, err := w.h.Get()
		if err != nil {
			return err
		}
		n, err = iw.DocCount()
		return err
	})
	return n, err
}

// Pending returns the number of buffered, uncommitted documents.
func (w *Writer) Pending() (int, error) {
	iw, err := w.h.Get()
	if err != nil {
		return 0, err
	}
	return iw.Pending(), nil
}

// Release flushes pending documents and closes the writer. Later calls
// report the first call's result.
func (w *Writer) Release() error {
	return release(w.e, w.h)
}
