package field

import (
	"errors"
	"testing"

	index "github.com/blevesearch/bleve_index_api"
)

func TestResolve_AllValidCombinations(t *testing.T) {
	for _, s := range storeOptions {
		for _, i := range indexOptions {
			for _, tv := range termVectorOptions {
				cfg, err := Resolve(s, i, tv)
				if s == "no" && i == "no" {
					if !errors.Is(err, ErrInvalidOption) {
						t.Errorf("Resolve(%s,%s,%s) error = %v, want ErrInvalidOption", s, i, tv, err)
					}
					continue
				}
				if i == "no" && tv != "no" {
					if !errors.Is(err, ErrInvalidOption) {
						t.Errorf("Resolve(%s,%s,%s) error = %v, want ErrInvalidOption", s, i, tv, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("Resolve(%s,%s,%s) error = %v", s, i, tv, err)
				}
				if cfg.Store.String() != s || cfg.Index.String() != i || cfg.TermVector.String() != tv {
					t.Errorf("Resolve(%s,%s,%s) = %v", s, i, tv, cfg)
				}
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	a, err := Resolve("compress", "untokenized", "positions+offsets")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		b, _ := Resolve("compress", "untokenized", "positions+offsets")
		if a != b || a.Flags() != b.Flags() {
			t.Fatalf("Resolve() not deterministic: %v vs %v", a, b)
		}
	}
}

func TestResolve_InvalidOption(t *testing.T) {
	tests := []struct {
		name           string
		store, idx, tv string
		wantAxis       Axis
		wantReceived   string
	}{
		{"bad store", "maybe", "tokenized", "no", AxisStore, "maybe"},
		{"case sensitive store", "YES", "tokenized", "no", AxisStore, "YES"},
		{"bad index", "yes", "analyzed", "no", AxisIndex, "analyzed"},
		{"empty index", "yes", "", "no", AxisIndex, ""},
		{"bad term vector", "yes", "tokenized", "offsets+positions", AxisTermVector, "offsets+positions"},
		{"store checked first", "nope", "nope", "nope", AxisStore, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.store, tt.idx, tt.tv)
			var optErr *InvalidOptionError
			if !errors.As(err, &optErr) {
				t.Fatalf("Resolve() error = %v, want *InvalidOptionError", err)
			}
			if optErr.Axis != tt.wantAxis || optErr.Received != tt.wantReceived {
				t.Errorf("got axis %s received %q, want %s %q", optErr.Axis, optErr.Received, tt.wantAxis, tt.wantReceived)
			}
			if !errors.Is(err, ErrInvalidOption) {
				t.Error("error should match ErrInvalidOption")
			}
		})
	}
}

func TestConfig_Flags(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Flags
	}{
		{Default, 1 | 32 | 256},
		{Config{StoreNo, IndexTokenized, TermVectorNo}, 2 | 32 | 256},
		{Config{StoreCompress, IndexUntokenized, TermVectorYes}, 4 | 64 | 512},
		{Config{StoreYes, IndexNoNorms, TermVectorPositions}, 1 | 128 | 512 | 1024},
		{Config{StoreYes, IndexTokenized, TermVectorOffsets}, 1 | 32 | 512 | 2048},
		{Config{StoreYes, IndexTokenized, TermVectorPositionsOffsets}, 1 | 32 | 512 | 1024 | 2048},
		{Config{StoreYes, IndexNo, TermVectorNo}, 1 | 16 | 256},
	}
	for _, tt := range tests {
		if got := tt.cfg.Flags(); got != tt.want {
			t.Errorf("%v.Flags() = %d, want %d", tt.cfg, got, tt.want)
		}
	}
}

func TestFlags_IndexingOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want index.FieldIndexingOptions
	}{
		{"default", Default, index.StoreField | index.IndexField},
		{"unstored", Config{StoreNo, IndexTokenized, TermVectorNo}, index.IndexField},
		{"stored only", Config{StoreYes, IndexNo, TermVectorNo}, index.StoreField},
		{"compress", Config{StoreCompress, IndexUntokenized, TermVectorNo}, index.StoreField | index.IndexField},
		{"nonorms", Config{StoreYes, IndexNoNorms, TermVectorNo}, index.StoreField | index.IndexField | index.SkipFreqNorm},
		{"vectors", Config{StoreNo, IndexTokenized, TermVectorPositionsOffsets}, index.IndexField | index.IncludeTermVectors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Flags().IndexingOptions(); got != tt.want {
				t.Errorf("IndexingOptions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ValidateOutOfRange(t *testing.T) {
	err := Config{Store: Store(7)}.Validate()
	var optErr *InvalidOptionError
	if !errors.As(err, &optErr) || optErr.Axis != AxisStore {
		t.Fatalf("Validate() error = %v, want store axis error", err)
	}
}

func TestInvalidOptionError_Message(t *testing.T) {
	err := &InvalidOptionError{Axis: AxisIndex, Received: "x"}
	want := `invalid index option "x" (expected one of no, tokenized, untokenized, nonorms)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
