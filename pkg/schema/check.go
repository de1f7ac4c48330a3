package schema

import "fmt"

// DefaultMaxDepth bounds object nesting when no explicit limit is given.
const DefaultMaxDepth = 32

// MaxParseDepth bounds nesting of parsed and stored definitions. Validators
// apply their own, usually lower, limit.
const MaxParseDepth = 1024

// Check verifies that def is well formed: every node is an allowed variant,
// no object shape contains itself and nesting stays within maxDepth.
// A maxDepth <= 0 selects DefaultMaxDepth.
func Check(def Definition, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	c := &checker{maxDepth: maxDepth, onPath: make(map[*Object]bool)}

	switch d := def.(type) {
	case nil:
		return &DefinitionError{Reason: "definition is nil"}
	case Primitive:
		return c.primitive(d, "")
	case Fields:
		return c.fields(d)
	case *Object:
		return c.object(d, "", 1)
	case ArrayOf:
		return c.array(d, "", 1)
	default:
		return &DefinitionError{Reason: fmt.Sprintf("unsupported definition %T", def)}
	}
}

type checker struct {
	maxDepth int
	onPath   map[*Object]bool
}

func (c *checker) primitive(p Primitive, path string) error {
	canonical, err := NewPrimitive(p.Name)
	if err != nil {
		return &DefinitionError{Path: path, Err: err}
	}
	if canonical.Name != p.Name {
		return &DefinitionError{Path: path, Reason: fmt.Sprintf("use %q instead of alias %q", canonical.Name, p.Name)}
	}
	return nil
}

func (c *checker) fields(f Fields) error {
	seen := make(map[string]bool, len(f))
	for _, field := range f {
		if seen[field.Name] {
			return &DefinitionError{Path: field.Name, Reason: "duplicate field"}
		}
		seen[field.Name] = true

		var err error
		switch t := field.Type.(type) {
		case Primitive:
			err = c.primitive(t, field.Name)
		case *Object:
			err = c.object(t, field.Name, 1)
		case ArrayOf:
			err = c.array(t, field.Name, 1)
		default:
			err = &DefinitionError{Path: field.Name, Reason: fmt.Sprintf("unsupported field type %T", field.Type)}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) array(a ArrayOf, path string, depth int) error {
	if a.Item == nil {
		return &DefinitionError{Path: path, Reason: "array item shape is nil"}
	}
	return c.object(a.Item, path+"[]", depth)
}

func (c *checker) object(o *Object, path string, depth int) error {
	if o == nil {
		return &DefinitionError{Path: path, Reason: "object shape is nil"}
	}
	if c.onPath[o] {
		return &DefinitionError{Path: path, Err: ErrCycle}
	}
	if depth > c.maxDepth {
		return &DefinitionError{Path: path, Err: ErrTooDeep}
	}

	c.onPath[o] = true
	defer delete(c.onPath, o)

	seen := make(map[string]bool, len(o.Keys))
	for _, k := range o.Keys {
		keyPath := joinPath(path, k.Name)
		if seen[k.Name] {
			return &DefinitionError{Path: keyPath, Reason: "duplicate key"}
		}
		seen[k.Name] = true

		switch t := k.Type.(type) {
		case Primitive:
			if err := c.primitive(t, keyPath); err != nil {
				return err
			}
		case *Object:
			if err := c.object(t, keyPath, depth+1); err != nil {
				return err
			}
		default:
			return &DefinitionError{Path: keyPath, Reason: fmt.Sprintf("unsupported key type %T", k.Type)}
		}
	}
	return nil
}
