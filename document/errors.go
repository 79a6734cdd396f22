package document

import (
	"errors"
	"fmt"
)

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("malformed document")

// SchemaError reports host input that does not describe a document.
type SchemaError struct {
	// Field is the offending field name, empty when the key itself is bad.
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrSchema, e.Reason)
	}
	return fmt.Sprintf("%s: field %q: %s", ErrSchema, e.Field, e.Reason)
}

// Is reports ErrSchema as a match.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// FieldError attaches a field name to a policy error.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
