package index

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/document"
)

func makeBenchDoc(b *testing.B, i int) document.Document {
	b.Helper()
	doc, err := document.Parse(document.Pairs{
		{Key: "title", Value: fmt.Sprintf("document %d", i)},
		{Key: "body", Value: "various keywords like git docker kubernetes"},
		{Key: "tag", Value: []any{fmt.Sprintf("tag_%d", i%5), "yes", "untokenized", "no"}},
	}, codec.UTF8())
	if err != nil {
		b.Fatal(err)
	}
	return doc
}

func BenchmarkWriter_Add(b *testing.B) {
	w, err := Create(filepath.Join(b.TempDir(), "idx"), Options{MaxBufferedDocs: 500})
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close()
	doc := makeBenchDoc(b, 0)

	b.ResetTimer()
	for b.Loop() {
		if _, err := w.Add(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriter_Optimize(b *testing.B) {
	w, err := Create(filepath.Join(b.TempDir(), "idx"), Options{MaxBufferedDocs: 50})
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close()
	for i := range 500 {
		if _, err := w.Add(makeBenchDoc(b, i)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for b.Loop() {
		if err := w.Optimize(b.Context()); err != nil {
			b.Fatal(err)
		}
	}
}
