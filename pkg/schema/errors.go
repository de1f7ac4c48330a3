package schema

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when an object shape contains itself.
var ErrCycle = errors.New("cyclic definition")

// ErrTooDeep is returned when a definition nests deeper than the allowed limit.
var ErrTooDeep = errors.New("definition nesting exceeds limit")

// DefinitionError represents a malformed definition.
type DefinitionError struct {
	Path   string // Dotted path to the offending node; empty for the root
	Reason string // Human-readable reason for failure
	Err    error  // Underlying cause, if any
}

func (e *DefinitionError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path == "" {
		return "schema: " + msg
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, msg)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
