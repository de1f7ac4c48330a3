package types

import "fmt"

// CoercionError is returned by Type.To when no sensible conversion exists.
type CoercionError struct {
	Type  string // Registry name of the target type
	Value any    // The value that could not be converted
}

func (e *CoercionError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("cannot coerce undefined to %s", e.Type)
	}
	return fmt.Sprintf("cannot coerce %T to %s", e.Value, e.Type)
}
