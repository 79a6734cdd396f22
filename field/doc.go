// Package field resolves declarative field policies into native indexing
// flags.
//
// A field is configured along three axes, each taking exactly one value:
//
//   - store:      yes, no, compress
//   - index:      no, tokenized, untokenized, nonorms
//   - termVector: no, yes, positions, offsets, positions+offsets
//
// Option strings are case-sensitive. [Resolve] validates all three axes and
// either returns a complete [Config] or an [*InvalidOptionError] naming the
// axis and the rejected value. There is no partial application and no silent
// defaulting: the only implicit policy is [Default], used for plain string
// fields.
//
// # Flag Encoding
//
// [Flags] uses the fixed bit layout of the classic Lucene field constants
// (STORE_YES=1 ... TERMVECTOR_WITH_POSITIONS_OFFSETS=3584). The ordinal of
// each option within its axis indexes a lookup table into those bits, so the
// option lists and the tables must change together.
//
// [Flags.IndexingOptions] translates the flags into bleve indexing options.
package field
