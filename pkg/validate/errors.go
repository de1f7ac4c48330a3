package validate

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	// ErrRequiredMissing: the field is declared required and the value is absent.
	ErrRequiredMissing ErrorKind = iota + 1
	// ErrInvalidType: the value is present but does not pass the type gate.
	ErrInvalidType
	// ErrCoercionFailure: coercion was requested, failed, and no base fallback was allowed.
	ErrCoercionFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRequiredMissing:
		return "required_missing"
	case ErrInvalidType:
		return "invalid_type"
	case ErrCoercionFailure:
		return "coercion_failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	for _, kind := range []ErrorKind{ErrRequiredMissing, ErrInvalidType, ErrCoercionFailure} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// FieldError is a single validation failure.
type FieldError struct {
	Kind     ErrorKind
	Field    string // Top-level field the failure belongs to; empty in scalar mode
	Path     string // Full path of the failing node, e.g. "owner.email" or "tags[2].label"
	Expected string // Declared type of the failing node
	Value    any    // The offending value; nil when absent
	Cause    error  // Underlying failure (coercion error, inner walk failure)
}

func (e *FieldError) Error() string {
	subject := "value"
	if e.Path != "" {
		subject = fmt.Sprintf("field %q", e.Path)
	}

	switch e.Kind {
	case ErrRequiredMissing:
		return subject + ": required"
	case ErrCoercionFailure:
		return fmt.Sprintf("%s: %v", subject, e.Cause)
	}

	msg := fmt.Sprintf("%s: expected %s", subject, e.Expected)
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %T)", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error { return e.Cause }

// AggregateError carries every failure of a structured validation, in field
// declaration order.
type AggregateError struct {
	Errors []*FieldError
	// Partial is the output tree built before failing. Items of array fields
	// that failed validation are kept in their original form.
	Partial map[string]any
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Errors returns the failures carried by err: every record of an
// AggregateError, the FieldError itself, or nil for any other error.
func Errors(err error) []*FieldError {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return []*FieldError{fe}
	}
	return nil
}

// HasKind reports whether err carries at least one failure of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	for _, fe := range Errors(err) {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}
