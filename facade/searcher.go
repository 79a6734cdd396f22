package facade

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/handle"
	"github.com/jonwraymond/luacene/index"
	"github.com/jonwraymond/luacene/search"
)

// Searcher is a read-only handle on an existing index.
type Searcher struct {
	e    *Engine
	h    *handle.Handle[*index.Reader]
	path string
}

// OpenSearcher opens the index at path for searching.
func (e *Engine) OpenSearcher(path string) (*Searcher, error) {
	var r *index.Reader
	err := e.guard(OpOpenSearcher, func() error {
		var err error
		r, err = index.OpenReader(path, e.index)
		return err
	})
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		e:    e,
		h:    track(e, handle.New(handle.KindSearcher, r, (*index.Reader).Close)),
		path: r.Path(),
	}
	handle.Finalize(s, s.h)
	e.log.Debug("searcher opened", zap.String("path", s.path))
	return s, nil
}

// Path returns the absolute index path.
func (s *Searcher) Path() string {
	return s.path
}

// Kind returns handle.KindSearcher.
func (s *Searcher) Kind() handle.Kind {
	return handle.KindSearcher
}

// Live reports whether the searcher has not been released.
func (s *Searcher) Live() bool {
	return s.h.Live()
}

// Search runs queryText against the index. Unqualified terms search the
// default field. The returned hits stay valid after the searcher is
// released.
func (s *Searcher) Search(ctx context.Context, queryText string) (*Hits, error) {
	var (
		hits     *search.Hits
		retained *index.Reader
	)
	err := s.e.guard(OpSearch, func() error {
		r, err := s.h.Get()
		if err != nil {
			return err
		}
		retained, err = r.Retain()
		if err != nil {
			return err
		}
		start := time.Now()
		hits, err = search.Run(ctx, retained, queryText)
		s.e.metrics.ObserveSearch(time.Since(start))
		if err != nil {
			_ = retained.Close()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	release := func(*search.Hits) error { return retained.Close() }
	hs := &Hits{
		e: s.e,
		h: track(s.e, handle.New(handle.KindHits, hits, release)),
	}
	handle.Finalize(hs, hs.h)
	s.e.log.Debug("search complete",
		zap.String("query", queryText),
		zap.Int("hits", hits.Len()),
		zap.Duration("took", hits.Took()))
	return hs, nil
}

// DocCount returns the number of searchable documents.
func (s *Searcher) DocCount() (uint64, error) {
	var n uint64
	err := s.e.guard(OpCount, func() error {
		r, err := s.h.Get()
		if err != nil {
			return err
		}
		n, err = r.DocCount()
		return err
	})
	return n, err
}

// Release closes the searcher. Hit sets it produced remain usable.
func (s *Searcher) Release() error {
	return release(s.e, s.h)
}
