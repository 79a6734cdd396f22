package document

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/jonwraymond/luacene/codec"
)

// Mapping is a host key/value structure. Keys are loosely typed because
// dynamic hosts may hand over non-string keys, which Parse rejects.
type Mapping interface {
	All() iter.Seq2[any, any]
}

// Pair is one key/value entry of a host structure.
type Pair struct {
	Key   any
	Value any
}

// Pairs is a Mapping that preserves the host's iteration order.
type Pairs []Pair

// All yields the pairs in order.
func (p Pairs) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, pair := range p {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Map is a Mapping over a Go map. Keys are visited in sorted order so
// documents built from the same map always have the same field order.
type Map map[string]any

// All yields the entries sorted by key.
func (m Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// Strings wraps a map of plain string fields.
func Strings(m map[string]string) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Field is one named value of a host document.
type Field struct {
	Name  string
	Value Value
}

// Document is the host view of a document: fields in the order the host
// supplied or the index returned them.
type Document struct {
	Fields []Field
}

// Len returns the number of fields.
func (d Document) Len() int {
	return len(d.Fields)
}

// Get returns the value of the first field with the given name.
func (d Document) Get(name string) (string, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value.Text(), true
		}
	}
	return "", false
}

// Has reports whether a field with the given name exists.
func (d Document) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Names returns field names in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// Map flattens the document into name -> value. Later duplicates win.
func (d Document) Map() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		out[f.Name] = f.Value.Text()
	}
	return out
}

// Equal reports whether both documents hold the same names and values in
// the same order. Policies are not compared.
func (d Document) Equal(other Document) bool {
	return slices.EqualFunc(d.Fields, other.Fields, func(a, b Field) bool {
		return a.Name == b.Name && a.Value.Text() == b.Value.Text()
	})
}

// Parse validates a host mapping and converts it to a Document. Names and
// string values are decoded from the host charset with c. The first invalid
// entry aborts parsing; nothing is returned on failure.
func Parse(m Mapping, c codec.Codec) (Document, error) {
	if m == nil {
		return Document{}, &SchemaError{Reason: "document is nil"}
	}

	var fields []Field
	seen := make(map[string]struct{})
	for key, raw := range m.All() {
		hostName, ok := key.(string)
		if !ok {
			return Document{}, &SchemaError{Reason: fmt.Sprintf("field name must be a string, got %T", key)}
		}
		name, err := c.Decode(hostName)
		if err != nil {
			return Document{}, &SchemaError{Field: hostName, Reason: err.Error()}
		}
		if err := checkName(name); err != nil {
			return Document{}, err
		}
		if _, dup := seen[name]; dup {
			return Document{}, &SchemaError{Field: name, Reason: "duplicate field"}
		}
		seen[name] = struct{}{}

		v, err := ParseValue(name, raw)
		if err != nil {
			return Document{}, err
		}
		v, err = decodeValue(name, v, c)
		if err != nil {
			return Document{}, err
		}
		fields = append(fields, Field{Name: name, Value: v})
	}
	return Document{Fields: fields}, nil
}

func checkName(name string) error {
	switch name {
	case "":
		return &SchemaError{Reason: "field name is empty"}
	case idFieldName, orderFieldName:
		return &SchemaError{Field: name, Reason: "field name is reserved"}
	}
	return nil
}

func decodeValue(name string, v Value, c codec.Codec) (Value, error) {
	text, err := c.Decode(v.Text())
	if err != nil {
		return nil, &SchemaError{Field: name, Reason: err.Error()}
	}
	switch t := v.(type) {
	case Plain:
		return Plain(text), nil
	case Configured:
		t.Value = text
		return t, nil
	default:
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("unsupported value variant %T", v)}
	}
}
