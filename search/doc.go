// Package search runs queries against an index and projects the resulting
// hits back into host documents.
//
// Queries use bleve's query-string syntax: field:term, +required, -excluded,
// "phrases", and boosts. Terms without a field search the index's default
// field ("contents").
//
// # Hit Sets
//
// [Run] returns a [Hits] value holding every match, ordered by score
// descending with ties broken by document ID ascending. Positions are
// 1-based:
//
//	hits, err := search.Run(ctx, reader, "contents:hello")
//	for i := 1; i <= hits.Len(); i++ {
//	    doc, err := hits.At(i, codec.Process())
//	    ...
//	}
//
// [Hits.At] loads the stored fields of the hit's document at call time and
// copies them into a fresh document. Nothing is cached; repeated calls yield
// equal documents. A position outside 1..Len fails with a [*RangeError].
package search
