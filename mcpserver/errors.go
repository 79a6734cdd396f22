package mcpserver

import "errors"

// Sentinel errors for tool argument validation.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
)
