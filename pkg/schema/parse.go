package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/typeguard/pkg/types"
)

// ordered is a mapping that remembers the order its keys were declared in.
type ordered struct {
	keys   []string
	values map[string]any
}

type entry struct {
	key   string
	value any
}

// entries lists the key/value pairs of a mapping. Documents decoded by
// ParseYAML/ParseJSON keep declaration order; plain Go maps have none,
// so their keys are sorted.
func entries(v any) ([]entry, bool) {
	if o, ok := v.(*ordered); ok {
		out := make([]entry, 0, len(o.keys))
		for _, k := range o.keys {
			out = append(out, entry{key: k, value: o.values[k]})
		}
		return out, true
	}

	m, ok := types.AsMap(v)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{key: k, value: m[k]})
	}
	return out, true
}

// fieldSpec is the raw shape of one top-level field: {type, required}.
type fieldSpec struct {
	Type     any  `mapstructure:"type"`
	Required bool `mapstructure:"required"`
}

// Parse converts a raw definition tree into a Definition.
//
// Accepted forms:
//   - a Definition, returned after Check;
//   - a type name ("string", "str", "number", "boolean", "bool");
//   - an example value (a number or a boolean) whose kind names the type;
//   - a mapping of field name to {type, required}, where type is a type name,
//     a nested mapping of key to type, or a one-element list wrapping a nested
//     mapping (array of objects).
//
// Nesting is only bounded by MaxParseDepth; the validator enforces its own limit.
func Parse(raw any) (Definition, error) {
	def, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if err := Check(def, MaxParseDepth); err != nil {
		return nil, err
	}
	return def, nil
}

func parse(raw any) (Definition, error) {
	switch v := raw.(type) {
	case nil:
		return nil, &DefinitionError{Reason: "definition is empty"}
	case Definition:
		return v, nil
	case string:
		p, err := NewPrimitive(v)
		if err != nil {
			return nil, &DefinitionError{Err: err}
		}
		return p, nil
	case bool:
		return Boolean(), nil
	}

	if types.MustLookup(types.Number).Is(raw) {
		return Number(), nil
	}
	if ents, ok := entries(raw); ok {
		return parseFields(ents)
	}
	return nil, &DefinitionError{Reason: fmt.Sprintf("unsupported definition %T", raw)}
}

func parseFields(ents []entry) (Fields, error) {
	fields := make(Fields, 0, len(ents))
	for _, e := range ents {
		specEntries, ok := entries(e.value)
		if !ok {
			return nil, &DefinitionError{Path: e.key, Reason: fmt.Sprintf("expected {type, required}, got %T", e.value)}
		}
		plain := make(map[string]any, len(specEntries))
		for _, se := range specEntries {
			plain[se.key] = se.value
		}

		var spec fieldSpec
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &spec,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(plain); err != nil {
			return nil, &DefinitionError{Path: e.key, Reason: "invalid field spec", Err: err}
		}
		if spec.Type == nil {
			return nil, &DefinitionError{Path: e.key, Reason: "missing type"}
		}

		t, err := parseFieldType(spec.Type, e.key)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: e.key, Type: t, Required: spec.Required})
	}
	return fields, nil
}

func parseFieldType(raw any, path string) (Definition, error) {
	switch v := raw.(type) {
	case Definition:
		return v, nil
	case string:
		p, err := NewPrimitive(v)
		if err != nil {
			return nil, &DefinitionError{Path: path, Err: err}
		}
		return p, nil
	}

	if list, ok := types.AsList(raw); ok {
		if len(list) != 1 {
			return nil, &DefinitionError{Path: path, Reason: "array marker must wrap exactly one object shape"}
		}
		ents, ok := entries(list[0])
		if !ok {
			return nil, &DefinitionError{Path: path + "[]", Reason: fmt.Sprintf("expected object shape, got %T", list[0])}
		}
		item, err := parseObject(ents, path+"[]", 1)
		if err != nil {
			return nil, err
		}
		return Array(item), nil
	}

	if ents, ok := entries(raw); ok {
		return parseObject(ents, path, 1)
	}
	return nil, &DefinitionError{Path: path, Reason: fmt.Sprintf("unsupported field type %T", raw)}
}

func parseObject(ents []entry, path string, depth int) (*Object, error) {
	if depth > MaxParseDepth {
		return nil, &DefinitionError{Path: path, Err: ErrTooDeep}
	}

	obj := &Object{Keys: make([]Key, 0, len(ents))}
	for _, e := range ents {
		keyPath := joinPath(path, e.key)
		switch v := e.value.(type) {
		case Definition:
			obj.Keys = append(obj.Keys, Prop(e.key, v))
			continue
		case string:
			p, err := NewPrimitive(v)
			if err != nil {
				return nil, &DefinitionError{Path: keyPath, Err: err}
			}
			obj.Keys = append(obj.Keys, Prop(e.key, p))
			continue
		}

		nested, ok := entries(e.value)
		if !ok {
			return nil, &DefinitionError{Path: keyPath, Reason: fmt.Sprintf("unsupported key type %T", e.value)}
		}
		child, err := parseObject(nested, keyPath, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, Prop(e.key, child))
	}
	return obj, nil
}

// ParseYAML parses a YAML definition document, keeping field declaration order.
func ParseYAML(data []byte) (Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	raw, err := fromNode(&doc)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		o := &ordered{values: make(map[string]any, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if _, dup := o.values[key]; dup {
				return nil, &DefinitionError{Path: key, Reason: fmt.Sprintf("duplicate key at line %d", n.Content[i].Line)}
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.keys = append(o.keys, key)
			o.values[key] = v
		}
		return o, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// ParseJSON parses a JSON definition document, keeping field declaration order.
func ParseJSON(data []byte) (Definition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	raw, err := decodeOrdered(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("failed to parse definition: trailing data")
	}
	return Parse(raw)
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		o := &ordered{values: make(map[string]any)}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			if _, dup := o.values[key]; dup {
				return nil, &DefinitionError{Path: key, Reason: "duplicate key"}
			}
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			o.keys = append(o.keys, key)
			o.values[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return o, nil
	case '[':
		list := []any{}
		for dec.More() {
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// LoadFile reads a definition from a YAML or JSON file, chosen by extension.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}
