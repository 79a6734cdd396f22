package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	bleveindex "github.com/blevesearch/bleve_index_api"
	"go.uber.org/zap"
)

// Reader is a read-only view of an index.
type Reader struct {
	sh     *shared
	log    *zap.Logger
	closed bool
}

// OpenReader opens the existing index at path for searching.
func OpenReader(path string, opts Options) (*Reader, error) {
	opts = opts.withDefaults()
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}
	sh, err := openIndexes.acquireShared(abs, func() (bleve.Index, error) {
		if _, err := os.Stat(filepath.Join(abs, metaFile)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotIndex, abs)
			}
			return nil, err
		}
		return bleve.OpenUsing(abs, runtimeConfig(opts, true))
	})
	if err != nil {
		return nil, err
	}
	r := &Reader{sh: sh, log: opts.Logger.With(zap.String("index", abs))}
	r.log.Debug("reader opened", zap.Bool("shared_with_writer", sh.writable))
	return r, nil
}

// Retain returns a second reader on the same native index. The index stays
// open until every reader and writer on it is closed.
func (r *Reader) Retain() (*Reader, error) {
	if r.closed {
		return nil, ErrClosed
	}
	openIndexes.mu.Lock()
	r.sh.refs++
	openIndexes.mu.Unlock()
	return &Reader{sh: r.sh, log: r.log}, nil
}

// Path returns the absolute index path.
func (r *Reader) Path() string {
	return r.sh.path
}

// SearchInContext runs a bleve search request.
func (r *Reader) SearchInContext(ctx context.Context, req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	if r.closed {
		return nil, ErrClosed
	}
	return r.sh.idx.SearchInContext(ctx, req)
}

// Document loads the stored fields of the document with the given ID.
func (r *Reader) Document(id string) (bleveindex.Document, error) {
	if r.closed {
		return nil, ErrClosed
	}
	doc, err := r.sh.idx.Document(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found", id)
	}
	return doc, nil
}

// DocCount returns the number of searchable documents.
func (r *Reader) DocCount() (uint64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.sh.idx.DocCount()
}

// Close releases the reader's reference to the native index.
func (r *Reader) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	return openIndexes.release(r.sh)
}
