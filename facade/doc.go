// Package facade is the embeddable entry point to luacene: it opens index
// writers and searchers, adds host documents, runs queries, and projects
// hits back into host documents.
//
// Every resource the facade hands out is wrapped in a handle with an
// explicit Release. Released handles fail with ErrUseAfterRelease instead
// of touching the native index. Handles that become unreachable are
// released by the garbage collector, but finalization timing is not a
// substitute for Release: a writer's pending documents are committed only
// when it is flushed or released.
//
// # Basic Usage
//
//	eng, err := facade.New(facade.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := eng.OpenWriter("/tmp/idx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.AddDocument(document.Pairs{
//	    {Key: "title", Value: "hello world"},
//	    {Key: "secret", Value: []any{"s3cr3t", "no", "tokenized", "no"}},
//	})
//	_ = w.Release()
//
//	s, _ := eng.OpenSearcher("/tmp/idx")
//	defer s.Release()
//	hits, _ := s.Search(ctx, "contents:hello")
//	defer hits.Release()
//	doc, err := hits.At(1)
//
// # Errors
//
// Failures raised by the native index are returned as *NativeFailure and
// match ErrNativeFailure. Input errors keep their own types: ErrSchema,
// ErrInvalidOption, and ErrIndexOutOfRange. Use errors.Is for the class and
// errors.As for the details.
//
// # Thread Safety
//
// Engine is safe for concurrent use. A single Writer, Searcher, or Hits
// must not be used from multiple goroutines at once; callers serialize
// access per handle. Release is safe to call concurrently with garbage
// collection. Distinct handles may be used in parallel.
package facade
