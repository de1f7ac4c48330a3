package validate

import (
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/types"
)

// walk validates value against a closed object shape and returns a new
// mapping holding only the declared keys. The first failing leaf aborts the
// walk.
func (r *run) walk(obj *schema.Object, value any, path string) (map[string]any, *FieldError) {
	m, ok := types.AsMap(value)
	if !ok {
		return nil, &FieldError{Kind: ErrInvalidType, Path: path, Expected: obj.String(), Value: value}
	}

	out := make(map[string]any, len(obj.Keys))
	for _, k := range obj.Keys {
		keyPath := joinPath(path, k.Name)

		switch t := k.Type.(type) {
		case *schema.Object:
			nested, ferr := r.walk(t, m[k.Name], keyPath)
			if ferr != nil {
				return nil, ferr
			}
			out[k.Name] = nested
		case schema.Primitive:
			leaf, ferr := r.leaf(t, m[k.Name], keyPath)
			if ferr != nil {
				return nil, ferr
			}
			out[k.Name] = leaf
		}
	}

	for key := range m {
		if !obj.Has(key) {
			r.stripped++
			r.logger.Debug("stripped undeclared key", "path", joinPath(path, key))
		}
	}
	return out, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
