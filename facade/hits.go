package facade

import (
	"github.com/jonwraymond/luacene/document"
	"github.com/jonwraymond/luacene/handle"
	"github.com/jonwraymond/luacene/search"
)

// Hits is a handle on the ordered result of one search. Positions are
// 1-based.
type Hits struct {
	e *Engine
	h *handle.Handle[*search.Hits]
}

// Len returns the number of hits.
func (hs *Hits) Len() (int, error) {
	res, err := hs.h.Get()
	if err != nil {
		return 0, err
	}
	return res.Len(), nil
}

// Query returns the query text that produced the hits.
func (hs *Hits) Query() (string, error) {
	res, err := hs.h.Get()
	if err != nil {
		return "", err
	}
	return res.Query(), nil
}

// Hit returns the ID and score of the hit at position.
func (hs *Hits) Hit(position int) (search.Hit, error) {
	res, err := hs.h.Get()
	if err != nil {
		return search.Hit{}, err
	}
	return res.Hit(position)
}

// At loads the stored fields of the hit at position into a new host
// document. Each call reads the index again; the result is a copy the
// caller owns.
func (hs *Hits) At(position int) (document.Document, error) {
	var doc document.Document
	err := hs.e.guard(OpHitAt, func() error {
		res, err := hs.h.Get()
		if err != nil {
			return err
		}
		doc, err = res.At(position, hs.e.codec)
		return err
	})
	return doc, err
}

// Kind returns handle.KindHits.
func (hs *Hits) Kind() handle.Kind {
	return handle.KindHits
}

// Live reports whether the hit set has not been released.
func (hs *Hits) Live() bool {
	return hs.h.Live()
}

// Release frees the hit set.
func (hs *Hits) Release() error {
	return release(hs.e, hs.h)
}
