package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError_Message(t *testing.T) {
	tests := []struct {
		err  *FieldError
		want string
	}{
		{
			&FieldError{Kind: ErrRequiredMissing, Field: "api_key", Path: "api_key"},
			`field "api_key": required`,
		},
		{
			&FieldError{Kind: ErrInvalidType, Field: "retries", Path: "retries", Expected: "number", Value: "x"},
			`field "retries": expected number (got string)`,
		},
		{
			&FieldError{Kind: ErrInvalidType, Expected: "number"},
			`value: expected number`,
		},
		{
			&FieldError{Kind: ErrCoercionFailure, Path: "n", Cause: errors.New("cannot coerce string to number")},
			`field "n": cannot coerce string to number`,
		},
		{
			&FieldError{Kind: ErrInvalidType, Path: "o", Expected: "{a: string}", Value: map[string]any{},
				Cause: &FieldError{Kind: ErrInvalidType, Path: "o.a", Expected: "string", Value: 1}},
			`field "o": expected {a: string} (got map[string]interface {}): field "o.a": expected string (got int)`,
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestAggregateError_Unwrap(t *testing.T) {
	inner := &FieldError{Kind: ErrInvalidType, Path: "b", Expected: "string"}
	aggr := &AggregateError{Errors: []*FieldError{
		{Kind: ErrRequiredMissing, Path: "a"},
		inner,
	}}

	assert.True(t, errors.Is(aggr, inner))
	assert.Contains(t, aggr.Error(), "2 validation errors")
	assert.Contains(t, aggr.Error(), `1. field "a": required`)

	wrapped := fmt.Errorf("request: %w", aggr)
	assert.Len(t, Errors(wrapped), 2)
	assert.True(t, HasKind(wrapped, ErrRequiredMissing))
	assert.False(t, HasKind(wrapped, ErrCoercionFailure))
}

func TestErrors_NonValidation(t *testing.T) {
	assert.Nil(t, Errors(errors.New("boom")))
	assert.Nil(t, Errors(nil))
}

func TestErrorKind_Text(t *testing.T) {
	data, err := json.Marshal(map[string]ErrorKind{"kind": ErrInvalidType})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind": "invalid_type"}`, string(data))
	assert.Equal(t, "ErrorKind(0)", ErrorKind(0).String())
}

func TestErrorKind_UnmarshalText(t *testing.T) {
	var got map[string]ErrorKind
	assert.NoError(t, json.Unmarshal([]byte(`{"kind": "coercion_failure"}`), &got))
	assert.Equal(t, ErrCoercionFailure, got["kind"])

	assert.Error(t, json.Unmarshal([]byte(`{"kind": "bogus"}`), &got))
}
