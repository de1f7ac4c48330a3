package types

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/spf13/cast"
)

// --- str ---

// StrType is the string kind.
type StrType struct{}

func (t *StrType) Name() string { return Str }

func (t *StrType) Is(value any) bool {
	_, ok := value.(string)
	return ok
}

// To formats booleans and finite numbers. Everything else is rejected,
// including undefined.
func (t *StrType) To(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return cast.ToStringE(v)
	case json.Number:
		if f, ok := finite(v); ok {
			return cast.ToString(f), nil
		}
		return nil, &CoercionError{Type: Str, Value: value}
	}

	f, ok := finite(value)
	if !ok {
		return nil, &CoercionError{Type: Str, Value: value}
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		// Named numeric types are not known to cast.
		s = cast.ToString(f)
	}
	return s, nil
}

func (t *StrType) Base() (any, bool) { return "", true }

// --- number ---

// NumberType is the numeric kind. Any finite Go integer or float,
// and json.Number, is a member.
type NumberType struct{}

func (t *NumberType) Name() string { return Number }

func (t *NumberType) Is(value any) bool {
	_, ok := finite(value)
	return ok
}

// To returns members unchanged. Numeric strings and booleans are converted
// to float64; NaN and infinities never convert.
func (t *NumberType) To(value any) (any, error) {
	if t.Is(value) {
		return value, nil
	}

	switch v := value.(type) {
	case string, bool:
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &CoercionError{Type: Number, Value: value}
		}
		return f, nil
	}
	return nil, &CoercionError{Type: Number, Value: value}
}

func (t *NumberType) Base() (any, bool) { return float64(0), true }

// --- bool ---

// BoolType is the boolean kind.
type BoolType struct{}

func (t *BoolType) Name() string { return Bool }

func (t *BoolType) Is(value any) bool {
	_, ok := value.(bool)
	return ok
}

// To accepts "true"/"1" and "false"/"0", and the numbers 1 and 0.
func (t *BoolType) To(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, &CoercionError{Type: Bool, Value: value}
	}

	if f, ok := finite(value); ok {
		switch f {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return nil, &CoercionError{Type: Bool, Value: value}
}

func (t *BoolType) Base() (any, bool) { return false, true }

// finite reports the float64 form of value when it is a finite number.
func finite(value any) (float64, bool) {
	f, ok := numeric(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numeric(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	if value == nil {
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
