package document

import (
	"fmt"

	"github.com/jonwraymond/luacene/field"
)

// Value is a host field value: Plain or Configured.
type Value interface {
	// Text returns the field's string value.
	Text() string
	// Config returns the policy the field is indexed with.
	Config() field.Config
}

// Plain is a string field indexed with the default policy.
type Plain string

// Text returns the string value.
func (p Plain) Text() string { return string(p) }

// Config returns field.Default.
func (p Plain) Config() field.Config { return field.Default }

// Configured is a string field with an explicit policy.
type Configured struct {
	Value  string
	Policy field.Config
}

// Text returns the string value.
func (c Configured) Text() string { return c.Value }

// Config returns the explicit policy.
func (c Configured) Config() field.Config { return c.Policy }

// Descriptor keys accepted by the named descriptor form.
const (
	KeyValue      = "value"
	KeyStore      = "store"
	KeyIndex      = "index"
	KeyTermVector = "termVector"
)

// ParseValue converts one loosely typed host value into a Value.
//
// Accepted shapes: string, Plain, Configured, a 4-element []any or []string
// positional descriptor, or a map[string]any / map[string]string named
// descriptor. Missing options in a named descriptor resolve as the empty
// string and therefore fail with an InvalidOptionError.
func ParseValue(name string, v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return Plain(t), nil
	case Plain:
		return t, nil
	case Configured:
		if err := t.Policy.Validate(); err != nil {
			return nil, err
		}
		return t, nil
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return parsePositional(name, items)
	case []any:
		return parsePositional(name, t)
	case map[string]string:
		items := make(map[string]any, len(t))
		for k, s := range t {
			items[k] = s
		}
		return parseNamed(name, items)
	case map[string]any:
		return parseNamed(name, t)
	default:
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("value of type %T is neither a string nor a field descriptor", v)}
	}
}

func parsePositional(name string, items []any) (Value, error) {
	if len(items) != 4 {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("field descriptor needs 4 elements (value, store, index, termVector), got %d", len(items))}
	}
	return configured(name, items[0], items[1], items[2], items[3])
}

func parseNamed(name string, items map[string]any) (Value, error) {
	for k := range items {
		switch k {
		case KeyValue, KeyStore, KeyIndex, KeyTermVector:
		default:
			return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("unknown descriptor key %q", k)}
		}
	}
	value, ok := items[KeyValue]
	if !ok {
		return nil, &SchemaError{Field: name, Reason: "field descriptor has no value"}
	}
	return configured(name, value, orEmpty(items, KeyStore), orEmpty(items, KeyIndex), orEmpty(items, KeyTermVector))
}

func orEmpty(items map[string]any, key string) any {
	if v, ok := items[key]; ok {
		return v
	}
	return ""
}

func configured(name string, value, store, idx, termVector any) (Value, error) {
	text, ok := value.(string)
	if !ok {
		return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("descriptor value must be a string, got %T", value)}
	}
	opts := [3]string{}
	for i, opt := range []any{store, idx, termVector} {
		s, ok := opt.(string)
		if !ok {
			return nil, &SchemaError{Field: name, Reason: fmt.Sprintf("descriptor option %d must be a string, got %T", i+2, opt)}
		}
		opts[i] = s
	}
	cfg, err := field.Resolve(opts[0], opts[1], opts[2])
	if err != nil {
		return nil, &FieldError{Field: name, Err: err}
	}
	return Configured{Value: text, Policy: cfg}, nil
}
