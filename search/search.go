package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	bleveindex "github.com/blevesearch/bleve_index_api"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/document"
)

// ErrIndexOutOfRange is matched by every *RangeError.
var ErrIndexOutOfRange = errors.New("hit position out of range")

// RangeError reports a hit position outside 1..Length.
type RangeError struct {
	Position int
	Length   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: position %d, length %d", ErrIndexOutOfRange, e.Position, e.Length)
}

// Is reports ErrIndexOutOfRange as a match.
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Source is the read side of an index.
type Source interface {
	SearchInContext(ctx context.Context, req *bleve.SearchRequest) (*bleve.SearchResult, error)
	Document(id string) (bleveindex.Document, error)
	DocCount() (uint64, error)
}

// Hit is one match.
type Hit struct {
	ID    string
	Score float64
}

// Hits is the ordered result of one query.
type Hits struct {
	src   Source
	query string
	hits  []Hit
	took  time.Duration
}

// sortOrder ranks by score, then by ID for deterministic ties.
var sortOrder = []string{"-_score", "_id"}

// Run parses queryText and collects every matching document.
func Run(ctx context.Context, src Source, queryText string) (*Hits, error) {
	if src == nil {
		return nil, errors.New("search source is nil")
	}
	count, err := src.DocCount()
	if err != nil {
		return nil, err
	}

	q := bleve.NewQueryStringQuery(queryText)
	res, err := execute(ctx, src, q, int(count))
	if err != nil {
		return nil, err
	}
	// Documents committed between DocCount and the search.
	if res.Total > uint64(len(res.Hits)) {
		res, err = execute(ctx, src, q, int(res.Total))
		if err != nil {
			return nil, err
		}
	}

	hits := make([]Hit, len(res.Hits))
	for i, m := range res.Hits {
		hits[i] = Hit{ID: m.ID, Score: m.Score}
	}
	return &Hits{src: src, query: queryText, hits: hits, took: res.Took}, nil
}

func execute(ctx context.Context, src Source, q query.Query, size int) (*bleve.SearchResult, error) {
	req := bleve.NewSearchRequestOptions(q, size, 0, false)
	req.SortBy(sortOrder)
	return src.SearchInContext(ctx, req)
}

// Query returns the query text the hits were produced by.
func (h *Hits) Query() string {
	return h.query
}

// Took returns the native search time.
func (h *Hits) Took() time.Duration {
	return h.took
}

// Len returns the number of hits.
func (h *Hits) Len() int {
	return len(h.hits)
}

// Hit returns the hit at a 1-based position.
func (h *Hits) Hit(position int) (Hit, error) {
	if position < 1 || position > len(h.hits) {
		return Hit{}, &RangeError{Position: position, Length: len(h.hits)}
	}
	return h.hits[position-1], nil
}

// At loads the document at a 1-based position and returns a host copy of
// its stored fields, encoded with c.
func (h *Hits) At(position int, c codec.Codec) (document.Document, error) {
	hit, err := h.Hit(position)
	if err != nil {
		return document.Document{}, err
	}
	doc, err := h.src.Document(hit.ID)
	if err != nil {
		return document.Document{}, err
	}
	return document.FromNative(doc, c)
}
