package field

import (
	"errors"
	"fmt"
	"strings"

	index "github.com/blevesearch/bleve_index_api"
)

// ErrInvalidOption is matched by every *InvalidOptionError.
var ErrInvalidOption = errors.New("invalid field option")

// Axis names one dimension of a field configuration.
type Axis string

const (
	AxisStore      Axis = "store"
	AxisIndex      Axis = "index"
	AxisTermVector Axis = "termVector"
)

// InvalidOptionError reports an option string outside its axis's
// enumeration, or a combination of options the index cannot honor.
type InvalidOptionError struct {
	Axis     Axis
	Received string
	// Reason is set for valid options that conflict with another axis.
	Reason string
}

func (e *InvalidOptionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s option %q: %s", e.Axis, e.Received, e.Reason)
	}
	return fmt.Sprintf("invalid %s option %q (expected one of %s)",
		e.Axis, e.Received, strings.Join(optionsFor(e.Axis), ", "))
}

// Is reports ErrInvalidOption as a match.
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// Store is the stored-value policy. Ordinals follow the option list order.
type Store int

const (
	StoreYes Store = iota
	StoreNo
	StoreCompress
)

// Index is the inverted-index policy.
type Index int

const (
	IndexNo Index = iota
	IndexTokenized
	IndexUntokenized
	IndexNoNorms
)

// TermVector is the term-vector policy.
type TermVector int

const (
	TermVectorNo TermVector = iota
	TermVectorYes
	TermVectorPositions
	TermVectorOffsets
	TermVectorPositionsOffsets
)

var (
	storeOptions      = []string{"yes", "no", "compress"}
	indexOptions      = []string{"no", "tokenized", "untokenized", "nonorms"}
	termVectorOptions = []string{"no", "yes", "positions", "offsets", "positions+offsets"}
)

func (s Store) String() string      { return optionName(storeOptions, int(s)) }
func (i Index) String() string      { return optionName(indexOptions, int(i)) }
func (t TermVector) String() string { return optionName(termVectorOptions, int(t)) }

// ParseStore maps a store option string to its policy.
func ParseStore(s string) (Store, error) {
	n, ok := lookup(storeOptions, s)
	if !ok {
		return 0, &InvalidOptionError{Axis: AxisStore, Received: s}
	}
	return Store(n), nil
}

// ParseIndex maps an index option string to its policy.
func ParseIndex(s string) (Index, error) {
	n, ok := lookup(indexOptions, s)
	if !ok {
		return 0, &InvalidOptionError{Axis: AxisIndex, Received: s}
	}
	return Index(n), nil
}

// ParseTermVector maps a term-vector option string to its policy.
func ParseTermVector(s string) (TermVector, error) {
	n, ok := lookup(termVectorOptions, s)
	if !ok {
		return 0, &InvalidOptionError{Axis: AxisTermVector, Received: s}
	}
	return TermVector(n), nil
}

// Config is a validated triple of field policies.
type Config struct {
	Store      Store
	Index      Index
	TermVector TermVector
}

// Default is the policy applied to plain string fields.
var Default = Config{Store: StoreYes, Index: IndexTokenized, TermVector: TermVectorNo}

// Resolve parses the three option strings into a Config. Axes are checked in
// store, index, termVector order and the first failure is returned.
func Resolve(store, idx, termVector string) (Config, error) {
	s, err := ParseStore(store)
	if err != nil {
		return Config{}, err
	}
	i, err := ParseIndex(idx)
	if err != nil {
		return Config{}, err
	}
	tv, err := ParseTermVector(termVector)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Store: s, Index: i, TermVector: tv}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-axis constraints: a field must be stored or indexed,
// and term vectors require an indexed field.
func (c Config) Validate() error {
	if !inRange(storeOptions, int(c.Store)) {
		return &InvalidOptionError{Axis: AxisStore, Received: fmt.Sprint(int(c.Store))}
	}
	if !inRange(indexOptions, int(c.Index)) {
		return &InvalidOptionError{Axis: AxisIndex, Received: fmt.Sprint(int(c.Index))}
	}
	if !inRange(termVectorOptions, int(c.TermVector)) {
		return &InvalidOptionError{Axis: AxisTermVector, Received: fmt.Sprint(int(c.TermVector))}
	}
	if c.Store == StoreNo && c.Index == IndexNo {
		return &InvalidOptionError{
			Axis:     AxisIndex,
			Received: c.Index.String(),
			Reason:   "field is neither stored nor indexed",
		}
	}
	if c.Index == IndexNo && c.TermVector != TermVectorNo {
		return &InvalidOptionError{
			Axis:     AxisTermVector,
			Received: c.TermVector.String(),
			Reason:   "term vectors require an indexed field",
		}
	}
	return nil
}

// Stored reports whether the field value is kept in the index.
func (c Config) Stored() bool { return c.Store != StoreNo }

// Indexed reports whether the field is searchable.
func (c Config) Indexed() bool { return c.Index != IndexNo }

// Tokenized reports whether the field value runs through the text analyzer.
func (c Config) Tokenized() bool { return c.Index == IndexTokenized }

// Flags returns the native flag set for the configuration.
func (c Config) Flags() Flags {
	return storeFlags[c.Store] | indexFlags[c.Index] | termVectorFlags[c.TermVector]
}

func (c Config) String() string {
	return fmt.Sprintf("{store: %s, index: %s, termVector: %s}", c.Store, c.Index, c.TermVector)
}

func lookup(options []string, s string) (int, bool) {
	for i, opt := range options {
		if opt == s {
			return i, true
		}
	}
	return 0, false
}

func inRange(options []string, n int) bool {
	return n >= 0 && n < len(options)
}

func optionName(options []string, n int) string {
	if !inRange(options, n) {
		return fmt.Sprintf("invalid(%d)", n)
	}
	return options[n]
}

func optionsFor(axis Axis) []string {
	switch axis {
	case AxisStore:
		return storeOptions
	case AxisIndex:
		return indexOptions
	case AxisTermVector:
		return termVectorOptions
	default:
		return nil
	}
}

// Flags is the native field flag set.
type Flags uint32

const (
	FlagStoreYes      Flags = 1
	FlagStoreNo       Flags = 2
	FlagStoreCompress Flags = 4

	FlagIndexNo          Flags = 16
	FlagIndexTokenized   Flags = 32
	FlagIndexUntokenized Flags = 64
	FlagIndexNoNorms     Flags = 128

	FlagTermVectorNo               Flags = 256
	FlagTermVectorYes              Flags = 512
	FlagTermVectorPositions        Flags = FlagTermVectorYes | 1024
	FlagTermVectorOffsets          Flags = FlagTermVectorYes | 2048
	FlagTermVectorPositionsOffsets Flags = FlagTermVectorPositions | FlagTermVectorOffsets
)

// Lookup tables indexed by option ordinal.
var (
	storeFlags = [...]Flags{
		StoreYes:      FlagStoreYes,
		StoreNo:       FlagStoreNo,
		StoreCompress: FlagStoreCompress,
	}
	indexFlags = [...]Flags{
		IndexNo:          FlagIndexNo,
		IndexTokenized:   FlagIndexTokenized,
		IndexUntokenized: FlagIndexUntokenized,
		IndexNoNorms:     FlagIndexNoNorms,
	}
	termVectorFlags = [...]Flags{
		TermVectorNo:               FlagTermVectorNo,
		TermVectorYes:              FlagTermVectorYes,
		TermVectorPositions:        FlagTermVectorPositions,
		TermVectorOffsets:          FlagTermVectorOffsets,
		TermVectorPositionsOffsets: FlagTermVectorPositionsOffsets,
	}
)

// Has reports whether every bit of want is set.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// IndexingOptions maps the flags onto bleve's per-field indexing options.
// Bleve records term positions and offsets together, so every term-vector
// variant enables IncludeTermVectors.
func (f Flags) IndexingOptions() index.FieldIndexingOptions {
	var opts index.FieldIndexingOptions
	if f.Has(FlagStoreYes) || f.Has(FlagStoreCompress) {
		opts |= index.StoreField
	}
	if f.Has(FlagIndexTokenized) || f.Has(FlagIndexUntokenized) || f.Has(FlagIndexNoNorms) {
		opts |= index.IndexField
	}
	if f.Has(FlagIndexNoNorms) {
		opts |= index.SkipFreqNorm
	}
	if f.Has(FlagTermVectorYes) {
		opts |= index.IncludeTermVectors
	}
	return opts
}
