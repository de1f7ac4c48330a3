package validate

import (
	"github.com/aretw0/typeguard/pkg/types"
)

// Conform coerces actual into the type implied by example and never fails.
//
// String, number and boolean examples coerce actual with the base-value
// fallback. A mapping example yields actual when it is a mapping and an empty
// mapping otherwise; a list example does the same for lists. Any other
// example returns actual untouched.
func Conform(example any, actual any) any {
	var t types.Type
	switch {
	case types.MustLookup(types.Str).Is(example):
		t = types.MustLookup(types.Str)
	case types.MustLookup(types.Bool).Is(example):
		t = types.MustLookup(types.Bool)
	case types.MustLookup(types.Number).Is(example):
		t = types.MustLookup(types.Number)
	case types.MustLookup(types.Obj).Is(example):
		if m, ok := types.AsMap(actual); ok {
			return m
		}
		return map[string]any{}
	case types.MustLookup(types.Arr).Is(example):
		if l, ok := types.AsList(actual); ok {
			return l
		}
		return []any{}
	default:
		return actual
	}

	out, err := t.To(actual)
	if err != nil {
		base, _ := t.Base()
		return base
	}
	return out
}
