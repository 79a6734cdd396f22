package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/index/scorch"
	"github.com/blevesearch/bleve/v2/index/scorch/mergeplan"
	"github.com/blevesearch/bleve/v2/mapping"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/document"
)

// metaFile marks a directory as a bleve index.
const metaFile = "index_meta.json"

// Writer adds documents to a freshly created index.
type Writer struct {
	sh      *shared
	batch   *bleve.Batch
	pending []pendingDoc
	builder *document.Builder
	opts    Options
	log     *zap.Logger
	commit  func(*bleve.Batch) error

	seq    uint64
	closed bool
}

// pendingDoc is a buffered document, kept so the batch can be rebuilt.
type pendingDoc struct {
	id  string
	doc document.Document
}

// Create creates an index at path, replacing any bleve index already there,
// and returns a writer for it.
func Create(path string, opts Options) (*Writer, error) {
	opts = opts.withDefaults()
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}

	m := newMapping(opts.DefaultField)
	sh, err := openIndexes.acquireExclusive(abs, func() (bleve.Index, error) {
		if err := clearForCreate(abs); err != nil {
			return nil, err
		}
		return bleve.NewUsing(abs, m, scorch.Name, bleve.Config.DefaultKVStore, runtimeConfig(opts, false))
	})
	if err != nil {
		return nil, err
	}

	text := m.AnalyzerNamed(standard.Name)
	kw := m.AnalyzerNamed(keyword.Name)
	if text == nil || kw == nil {
		_ = openIndexes.release(sh)
		return nil, errors.New("standard analyzers are not registered")
	}

	w := &Writer{
		sh:    sh,
		batch: sh.idx.NewBatch(),
		builder: &document.Builder{
			Analyzers:    document.Analyzers{Text: text, Keyword: kw},
			DefaultField: opts.DefaultField,
		},
		opts: opts,
		log:  opts.Logger.With(zap.String("index", abs)),
	}
	w.commit = sh.idx.Batch
	w.log.Debug("index created")
	return w, nil
}

func newMapping(defaultField string) *mapping.IndexMappingImpl {
	m := bleve.NewIndexMapping()
	m.DefaultField = defaultField
	m.DefaultAnalyzer = standard.Name
	return m
}

func runtimeConfig(opts Options, readOnly bool) map[string]interface{} {
	cfg := map[string]interface{}{
		"bolt_timeout": opts.LockTimeout.String(),
	}
	if readOnly {
		cfg["read_only"] = true
	}
	return cfg
}

// clearForCreate removes an existing bleve index at path. Non-index
// directories are left alone.
func clearForCreate(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is a file", ErrNotIndex, path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return os.Remove(path)
	}
	if _, err := os.Stat(filepath.Join(path, metaFile)); err != nil {
		return fmt.Errorf("%w: %s is not empty and has no %s", ErrNotIndex, path, metaFile)
	}
	return os.RemoveAll(path)
}

// Path returns the absolute index path.
func (w *Writer) Path() string {
	return w.sh.path
}

// Add converts d into a native document and appends it to the pending
// batch. It returns the assigned document ID. When the batch is full it is
// committed; if that commit fails, d is removed from the batch again and
// the documents buffered before it stay pending.
func (w *Writer) Add(d document.Document) (string, error) {
	if w.closed {
		return "", ErrClosed
	}
	w.seq++
	id := fmt.Sprintf("%016x", w.seq)
	doc, err := w.builder.Build(id, d)
	if err != nil {
		w.seq--
		return "", err
	}
	if err := w.batch.IndexAdvanced(doc); err != nil {
		w.seq--
		return "", err
	}
	w.pending = append(w.pending, pendingDoc{id: id, doc: d})
	if len(w.pending) >= w.opts.MaxBufferedDocs {
		if err := w.Flush(); err != nil {
			w.seq--
			if rerr := w.rebuild(w.pending[:len(w.pending)-1]); rerr != nil {
				return "", errors.Join(err, rerr)
			}
			return "", err
		}
	}
	return id, nil
}

// rebuild replaces the batch with fresh native documents for keep. The old
// batch may hold documents the failed commit already analyzed.
func (w *Writer) rebuild(keep []pendingDoc) error {
	w.batch.Reset()
	w.pending = keep
	for _, p := range keep {
		doc, err := w.builder.Build(p.id, p.doc)
		if err != nil {
			return err
		}
		if err := w.batch.IndexAdvanced(doc); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the number of buffered, uncommitted documents.
func (w *Writer) Pending() int {
	if w.closed {
		return 0
	}
	return len(w.pending)
}

// Flush commits the pending batch.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	n := len(w.pending)
	if n == 0 {
		return nil
	}
	if err := w.commit(w.batch); err != nil {
		return err
	}
	w.batch.Reset()
	w.pending = w.pending[:0]
	w.log.Debug("batch committed", zap.Int("docs", n))
	return nil
}

type forceMerger interface {
	ForceMerge(ctx context.Context, mo *mergeplan.MergePlanOptions) error
}

// Optimize flushes and merges the index down to a single segment. Index
// types without force-merge support only flush.
func (w *Writer) Optimize(ctx context.Context) error {
	if err := w.Flush(); err != nil {
		return err
	}
	adv, err := w.sh.idx.Advanced()
	if err != nil {
		return err
	}
	fm, ok := adv.(forceMerger)
	if !ok {
		return nil
	}
	if err := fm.ForceMerge(ctx, &mergeplan.SingleSegmentMergePlanOptions); err != nil {
		return err
	}
	w.log.Debug("index optimized")
	return nil
}

// DocCount returns the number of committed documents.
func (w *Writer) DocCount() (uint64, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.sh.idx.DocCount()
}

// Close flushes pending documents, drops the analyzers, and releases the
// native index. Closing twice returns ErrClosed.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	flushErr := w.Flush()
	w.closed = true
	w.builder = nil
	w.batch = nil
	w.pending = nil
	closeErr := openIndexes.release(w.sh)
	w.log.Debug("writer closed")
	return errors.Join(flushErr, closeErr)
}
