package types

import "sort"

// Registry names of the built-in kinds.
const (
	Str       = "str"
	Number    = "number"
	Bool      = "bool"
	Obj       = "obj"
	Arr       = "arr"
	Undefined = "undefined"
)

// Type defines the contract of a registry entry.
type Type interface {
	// Name returns the registry name (e.g., "str", "number").
	Name() string
	// Is reports whether value already belongs to the type. It never converts.
	Is(value any) bool
	// To converts value into the canonical representation of the type.
	// It returns a *CoercionError when no sensible conversion exists.
	To(value any) (any, error)
	// Base returns the canonical default of the type.
	// ok is false for kinds without a base (obj, arr, undefined).
	Base() (value any, ok bool)
}

// aliases maps public type names onto registry names.
var aliases = map[string]string{
	"string":  Str,
	"boolean": Bool,
}

var registry = map[string]Type{
	Str:       &StrType{},
	Number:    &NumberType{},
	Bool:      &BoolType{},
	Obj:       &ObjType{},
	Arr:       &ArrType{},
	Undefined: &UndefinedType{},
}

// Resolve maps an alias onto its registry name. Unknown names are returned as-is.
func Resolve(name string) string {
	if to, ok := aliases[name]; ok {
		return to
	}
	return name
}

// Lookup returns the registry entry for name, resolving aliases first.
func Lookup(name string) (Type, bool) {
	t, ok := registry[Resolve(name)]
	return t, ok
}

// MustLookup is like Lookup but panics for unknown names.
// Use it for names that were validated when the schema was built.
func MustLookup(name string) Type {
	t, ok := Lookup(name)
	if !ok {
		panic("types: unknown type " + name)
	}
	return t
}

// Names returns the registry names in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
