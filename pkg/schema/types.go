package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/typeguard/pkg/types"
)

// Kind identifies the variant of a Definition.
type Kind int

const (
	KindPrimitive Kind = iota
	KindFields
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindFields:
		return "fields"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Definition is a node of a type contract. The set of implementations is
// closed: Primitive, Fields, *Object and ArrayOf.
type Definition interface {
	Kind() Kind
	String() string
	definition()
}

// primitiveNames maps every accepted spelling onto the canonical name.
var primitiveNames = map[string]string{
	"string":  "string",
	"str":     "string",
	"number":  "number",
	"boolean": "boolean",
	"bool":    "boolean",
}

// --- Primitive ---

// Primitive is a scalar leaf: string, number or boolean.
type Primitive struct {
	Name string
}

// NewPrimitive normalizes aliases ("str", "bool") and rejects unknown names.
func NewPrimitive(name string) (Primitive, error) {
	canonical, ok := primitiveNames[name]
	if !ok {
		return Primitive{}, fmt.Errorf("unsupported type: %s", name)
	}
	return Primitive{Name: canonical}, nil
}

func (p Primitive) Kind() Kind     { return KindPrimitive }
func (p Primitive) String() string { return p.Name }
func (Primitive) definition()      {}

// Type returns the registry entry backing the primitive.
func (p Primitive) Type() (types.Type, bool) {
	return types.Lookup(p.Name)
}

// --- Object ---

// Key is one declared entry of a nested object shape.
type Key struct {
	Name string
	Type Definition // Primitive or *Object
}

// Object is a closed nested mapping shape. Keys keep declaration order.
type Object struct {
	Keys []Key
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) String() string {
	parts := make([]string, 0, len(o.Keys))
	for _, k := range o.Keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k.Name, typeString(k.Type)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (*Object) definition() {}

// Has reports whether name is a declared key.
func (o *Object) Has(name string) bool {
	for _, k := range o.Keys {
		if k.Name == name {
			return true
		}
	}
	return false
}

// --- ArrayOf ---

// ArrayOf marks a field whose value must be a list of Item-shaped mappings.
type ArrayOf struct {
	Item *Object
}

func (a ArrayOf) Kind() Kind { return KindArray }

func (a ArrayOf) String() string {
	if a.Item == nil {
		return "[]"
	}
	return "[" + a.Item.String() + "]"
}

func (ArrayOf) definition() {}

// --- Fields ---

// Field is one named top-level entry of a structured contract.
type Field struct {
	Name     string
	Type     Definition // Primitive, *Object or ArrayOf
	Required bool
}

// Fields is the ordered list of top-level fields of a structured contract.
type Fields []Field

func (f Fields) Kind() Kind { return KindFields }

func (f Fields) String() string {
	parts := make([]string, 0, len(f))
	for _, field := range f {
		name := field.Name
		if !field.Required {
			name += "?"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, typeString(field.Type)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (Fields) definition() {}

// Lookup returns the field declared under name.
func (f Fields) Lookup(name string) (Field, bool) {
	for _, field := range f {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func typeString(def Definition) string {
	if def == nil {
		return "<nil>"
	}
	return def.String()
}

// --- Factory Functions ---

// String creates a string leaf.
func String() Primitive { return Primitive{Name: "string"} }

// Number creates a number leaf.
func Number() Primitive { return Primitive{Name: "number"} }

// Boolean creates a boolean leaf.
func Boolean() Primitive { return Primitive{Name: "boolean"} }

// Prop declares a key of a nested object.
func Prop(name string, t Definition) Key {
	return Key{Name: name, Type: t}
}

// NewObject creates a nested object shape from keys in declaration order.
func NewObject(keys ...Key) *Object {
	return &Object{Keys: keys}
}

// Array creates an array-of-object marker.
func Array(item *Object) ArrayOf {
	return ArrayOf{Item: item}
}

// Required declares a field that must be present.
func Required(name string, t Definition) Field {
	return Field{Name: name, Type: t, Required: true}
}

// Optional declares a field that may be absent.
func Optional(name string, t Definition) Field {
	return Field{Name: name, Type: t}
}

// NewFields creates a structured contract from fields in declaration order.
func NewFields(fields ...Field) Fields {
	if fields == nil {
		return Fields{}
	}
	return Fields(fields)
}
