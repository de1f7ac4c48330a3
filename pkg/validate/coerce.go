package validate

import (
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/types"
)

// scalarKinds maps the leaf type names accepted by the tuple check onto
// registry entries.
var scalarKinds = map[string]types.Type{
	"string":  types.MustLookup(types.Str),
	"number":  types.MustLookup(types.Number),
	"boolean": types.MustLookup(types.Bool),
}

// IsValidScalar is the final gate for leaves: it reports whether def is one
// of the string, number or boolean primitives and value is a member of it.
// Structured definitions never pass.
func IsValidScalar(def schema.Definition, value any) bool {
	p, ok := def.(schema.Primitive)
	if !ok {
		return false
	}
	t, ok := scalarKinds[p.Name]
	if !ok {
		return false
	}
	return t.Is(value)
}

// coerce applies the registry conversion of p to value under the run's policy.
// Without coercion the value is returned untouched; type correctness is left
// to IsValidScalar.
func (r *run) coerce(p schema.Primitive, value any, path string) (any, error) {
	if !r.opts.Coerce {
		return value, nil
	}

	t, ok := p.Type()
	if !ok {
		return nil, &types.CoercionError{Type: p.Name, Value: value}
	}
	out, err := t.To(value)
	if err == nil {
		return out, nil
	}
	if !r.opts.Base {
		return nil, err
	}

	base, _ := t.Base()
	r.fallbacks++
	r.logger.Debug("coercion fell back to base value", "path", path, "type", p.Name, "error", err)
	if r.opts.Hooks.OnFallback != nil {
		r.opts.Hooks.OnFallback(&FallbackEvent{Path: path, Type: p.Name, Value: value})
	}
	return base, nil
}

// leaf coerces then checks one scalar.
func (r *run) leaf(p schema.Primitive, value any, path string) (any, *FieldError) {
	out, err := r.coerce(p, value, path)
	if err != nil {
		return nil, &FieldError{Kind: ErrCoercionFailure, Path: path, Expected: p.Name, Value: value, Cause: err}
	}
	if !IsValidScalar(p, out) {
		return nil, &FieldError{Kind: ErrInvalidType, Path: path, Expected: p.Name, Value: value}
	}
	return out, nil
}
