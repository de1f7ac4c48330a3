package validate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/types"
)

// Validator enforces type contracts on dynamically typed values.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	opts Options
}

// New creates a Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(&v.opts)
	}
	return v
}

// Validate is a shortcut for New(opts...).Validate(def, value).
func Validate(def schema.Definition, value any, opts ...Option) (any, error) {
	return New(opts...).Validate(def, value)
}

// Options returns a copy of the validator's configuration.
func (v *Validator) Options() Options {
	return v.opts
}

// run is the call-local state of one validation.
type run struct {
	opts      *Options
	logger    *slog.Logger
	stripped  int
	fallbacks int
}

// Validate checks value against def and returns the validated value.
//
// A Primitive definition selects scalar mode: the single value is coerced
// and checked, and a failure is returned as one *FieldError.
//
// A Fields definition selects structured mode: every declared field is
// evaluated and all failures are returned together as an *AggregateError.
// Undeclared top-level keys are kept; undeclared keys of nested objects are
// dropped.
//
// The input value is never modified; the result is a new tree.
func (v *Validator) Validate(def schema.Definition, value any) (any, error) {
	if err := schema.Check(def, v.opts.maxDepth()); err != nil {
		return nil, err
	}

	start := time.Now()
	r := &run{opts: &v.opts, logger: v.opts.logger()}

	var (
		out  any
		err  error
		mode Mode
	)
	switch d := def.(type) {
	case schema.Primitive:
		mode = ModeScalar
		out, err = r.scalar(d, value)
	case schema.Fields:
		mode = ModeStructured
		out, err = r.structured(d, value)
	default:
		return nil, &schema.DefinitionError{Reason: fmt.Sprintf("top-level definition must be a primitive or fields, got %s", def.Kind())}
	}

	if err != nil {
		r.logger.Debug("validation failed", "mode", mode, "definition", def.String(), "error", err)
	}
	if v.opts.Hooks.OnValidate != nil {
		v.opts.Hooks.OnValidate(&ValidationEvent{
			Timestamp: start,
			Mode:      mode,
			Duration:  time.Since(start),
			Errors:    Errors(err),
			Stripped:  r.stripped,
			Fallbacks: r.fallbacks,
		})
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *run) scalar(p schema.Primitive, value any) (any, error) {
	out, ferr := r.leaf(p, value, "")
	if ferr != nil {
		return nil, ferr
	}
	return out, nil
}

func (r *run) structured(fields schema.Fields, value any) (any, error) {
	var m map[string]any
	if value != nil {
		var ok bool
		m, ok = types.AsMap(value)
		if !ok {
			return nil, &AggregateError{Errors: []*FieldError{
				{Kind: ErrInvalidType, Expected: fields.String(), Value: value},
			}}
		}
	}

	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = val
	}

	var errs []*FieldError
	for _, f := range fields {
		raw := m[f.Name]
		if raw == nil {
			if f.Required {
				errs = append(errs, &FieldError{Kind: ErrRequiredMissing, Field: f.Name, Path: f.Name, Expected: f.Type.String()})
			}
			continue
		}

		switch t := f.Type.(type) {
		case schema.ArrayOf:
			items, itemErrs, ok := r.array(f.Name, t, raw)
			errs = append(errs, itemErrs...)
			if ok {
				out[f.Name] = items
			}
		case *schema.Object:
			nested, ferr := r.walk(t, raw, f.Name)
			if ferr != nil {
				errs = append(errs, collapse(f.Name, f.Name, t, raw, ferr))
				continue
			}
			out[f.Name] = nested
		case schema.Primitive:
			leaf, ferr := r.leaf(t, raw, f.Name)
			if ferr != nil {
				ferr.Field = f.Name
				errs = append(errs, ferr)
				continue
			}
			out[f.Name] = leaf
		}
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs, Partial: out}
	}
	return out, nil
}

// array walks every item of a list field. A failing item is reported and kept
// in its original form; the remaining items are still processed.
func (r *run) array(name string, t schema.ArrayOf, raw any) ([]any, []*FieldError, bool) {
	list, ok := types.AsList(raw)
	if !ok {
		return nil, []*FieldError{{Kind: ErrInvalidType, Field: name, Path: name, Expected: t.String(), Value: raw}}, false
	}

	var errs []*FieldError
	items := make([]any, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", name, i)
		walked, ferr := r.walk(t.Item, item, itemPath)
		if ferr != nil {
			errs = append(errs, collapse(name, itemPath, t.Item, item, ferr))
			items[i] = item
			continue
		}
		items[i] = walked
	}
	return items, errs, true
}

// collapse turns a failure raised inside a nested walk into one invalid-type
// record at path, keeping the inner failure as cause.
func collapse(field, path string, obj *schema.Object, value any, inner *FieldError) *FieldError {
	if inner.Path == path {
		inner.Field = field
		return inner
	}
	return &FieldError{
		Kind:     ErrInvalidType,
		Field:    field,
		Path:     path,
		Expected: obj.String(),
		Value:    value,
		Cause:    inner,
	}
}
