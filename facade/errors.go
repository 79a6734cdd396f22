package facade

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/luacene/document"
	"github.com/jonwraymond/luacene/field"
	"github.com/jonwraymond/luacene/handle"
	"github.com/jonwraymond/luacene/search"
)

// Error classes returned by facade operations.
var (
	ErrSchema          = document.ErrSchema
	ErrInvalidOption   = field.ErrInvalidOption
	ErrIndexOutOfRange = search.ErrIndexOutOfRange
	ErrUseAfterRelease = handle.ErrUseAfterRelease
	ErrNativeFailure   = errors.New("native failure")
)

const unknownMessage = "unknown"

// NativeFailure is an error raised by the native index during Op.
type NativeFailure struct {
	Op      string
	Message string
	Err     error
}

func (e *NativeFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the native error, if any.
func (e *NativeFailure) Unwrap() error {
	return e.Err
}

// Is reports ErrNativeFailure as a match.
func (e *NativeFailure) Is(target error) bool {
	return target == ErrNativeFailure
}

// hostError reports errors caused by host input or handle misuse. They
// cross the boundary unchanged.
func hostError(err error) bool {
	return errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrInvalidOption) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrUseAfterRelease)
}

func nativeFailure(op string, err error) *NativeFailure {
	msg := err.Error()
	if msg == "" {
		msg = unknownMessage
	}
	return &NativeFailure{Op: op, Message: msg, Err: err}
}

func panicFailure(op string, r any) *NativeFailure {
	if err, ok := r.(error); ok {
		return nativeFailure(op, err)
	}
	msg := fmt.Sprint(r)
	if r == nil || msg == "" {
		msg = unknownMessage
	}
	return &NativeFailure{Op: op, Message: msg}
}
