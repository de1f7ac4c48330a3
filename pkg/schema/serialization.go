package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Marshal serializes a definition into the raw JSON form accepted by ParseJSON.
func Marshal(def Definition) ([]byte, error) {
	if def == nil {
		return nil, fmt.Errorf("schema: cannot marshal nil definition")
	}
	return json.Marshal(def)
}

// MarshalJSON serializes the primitive as its type name.
func (p Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Name)
}

// MarshalJSON serializes the object as a mapping of key to type, in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if k.Type == nil {
			return nil, fmt.Errorf("key %s: type is nil", k.Name)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, k.Name, k.Type); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON serializes the marker as a one-element list wrapping the item shape.
func (a ArrayOf) MarshalJSON() ([]byte, error) {
	item, err := json.Marshal(a.Item)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{'['}, item...), ']'), nil
}

type fieldJSON struct {
	Type     Definition `json:"type"`
	Required bool       `json:"required"`
}

// MarshalJSON serializes the fields as a mapping of name to {type, required}, in declaration order.
func (f Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if field.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", field.Name)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, field.Name, fieldJSON{Type: field.Type, Required: field.Required}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, value any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}
