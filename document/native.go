package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/blevesearch/bleve/v2/analysis"
	native "github.com/blevesearch/bleve/v2/document"
	index "github.com/blevesearch/bleve_index_api"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/field"
)

// idFieldName is bleve's internal document identifier field.
const idFieldName = "_id"

// orderFieldName holds the host field order as a stored, unindexed JSON
// array. Stored fields come back from the index in field-ID order.
const orderFieldName = "_order"

// DefaultField is the field unqualified queries search.
const DefaultField = "contents"

// Analyzers holds the analyzers a Builder attaches to indexed fields.
type Analyzers struct {
	// Text is used for tokenized fields.
	Text analysis.Analyzer
	// Keyword is used for untokenized and nonorms fields.
	Keyword analysis.Analyzer
}

// Builder produces native documents.
type Builder struct {
	Analyzers Analyzers
	// DefaultField names the catch-all composite field. Empty means
	// DefaultField.
	DefaultField string
}

// Build converts a parsed document into a native document with the given ID.
func (b *Builder) Build(id string, d Document) (*native.Document, error) {
	if id == "" {
		return nil, errors.New("document id is empty")
	}
	if b.Analyzers.Text == nil || b.Analyzers.Keyword == nil {
		return nil, errors.New("builder has no analyzers")
	}

	defaultField := b.DefaultField
	if defaultField == "" {
		defaultField = DefaultField
	}

	doc := native.NewDocument(id)
	ownDefault := false
	for _, f := range d.Fields {
		cfg := f.Value.Config()
		if err := cfg.Validate(); err != nil {
			return nil, &FieldError{Field: f.Name, Err: err}
		}
		if f.Name == defaultField {
			ownDefault = true
		}
		doc.AddField(native.NewTextFieldCustom(
			f.Name,
			nil,
			[]byte(f.Value.Text()),
			cfg.Flags().IndexingOptions(),
			b.analyzerFor(cfg),
		))
	}
	if !ownDefault {
		doc.AddField(native.NewCompositeFieldWithIndexingOptions(
			defaultField, true, nil, nil, index.IndexField,
		))
	}
	order, err := json.Marshal(d.Names())
	if err != nil {
		return nil, fmt.Errorf("encode field order: %w", err)
	}
	doc.AddField(native.NewTextFieldCustom(
		orderFieldName, nil, order, index.StoreField, b.Analyzers.Keyword,
	))
	return doc, nil
}

func (b *Builder) analyzerFor(cfg field.Config) analysis.Analyzer {
	if cfg.Tokenized() {
		return b.Analyzers.Text
	}
	return b.Analyzers.Keyword
}

// FromNative copies the stored fields of a native document into a fresh
// host Document, encoding names and values into the host charset with c.
// Fields follow the order recorded at Build time; documents without a
// recorded order keep the index's order. Composite, identifier and order
// fields are skipped.
func FromNative(doc index.Document, c codec.Codec) (Document, error) {
	if doc == nil {
		return Document{}, errors.New("native document is nil")
	}
	type stored struct {
		name, value string
	}
	var (
		fields []stored
		order  []string
	)
	doc.VisitFields(func(f index.Field) {
		switch f.Name() {
		case idFieldName:
			return
		case orderFieldName:
			_ = json.Unmarshal(f.Value(), &order)
			return
		}
		if _, composite := f.(index.CompositeField); composite {
			return
		}
		// Copy: the native value may alias segment memory.
		fields = append(fields, stored{name: f.Name(), value: string(f.Value())})
	})

	if len(order) > 0 {
		rank := make(map[string]int, len(order))
		for i, name := range order {
			if _, dup := rank[name]; !dup {
				rank[name] = i
			}
		}
		position := func(name string) int {
			if i, ok := rank[name]; ok {
				return i
			}
			return len(order)
		}
		slices.SortStableFunc(fields, func(a, b stored) int {
			return position(a.name) - position(b.name)
		})
	}

	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		name, err := c.Encode(f.name)
		if err != nil {
			return Document{}, fmt.Errorf("field %q: %w", f.name, err)
		}
		value, err := c.Encode(f.value)
		if err != nil {
			return Document{}, fmt.Errorf("field %q: %w", f.name, err)
		}
		out = append(out, Field{Name: name, Value: Plain(value)})
	}
	return Document{Fields: out}, nil
}
