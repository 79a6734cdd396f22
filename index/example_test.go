package index_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/document"
	"github.com/jonwraymond/luacene/index"
)

func ExampleCreate() {
	dir, _ := os.MkdirTemp("", "index-example")
	defer os.RemoveAll(dir)

	w, err := index.Create(filepath.Join(dir, "idx"), index.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	doc, _ := document.Parse(document.Pairs{{Key: "title", Value: "hello world"}}, codec.UTF8())
	_, _ = w.Add(doc)
	fmt.Println("pending:", w.Pending())

	_ = w.Flush()
	n, _ := w.DocCount()
	fmt.Println("committed:", n)
	_ = w.Close()
	// Output:
	// pending: 1
	// committed: 1
}

func ExampleOpenReader() {
	dir, _ := os.MkdirTemp("", "index-example")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "idx")

	w, _ := index.Create(path, index.Options{})
	for _, title := range []string{"one", "two"} {
		doc, _ := document.Parse(document.Strings(map[string]string{"title": title}), codec.UTF8())
		_, _ = w.Add(doc)
	}
	_ = w.Close()

	r, err := index.OpenReader(path, index.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer r.Close()
	n, _ := r.DocCount()
	fmt.Println("documents:", n)
	// Output:
	// documents: 2
}
