package typeguard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeValue decodes a JSON document into a value tree.
func DecodeValue(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to decode value: trailing data")
	}
	return v, nil
}

// DecodeYAMLValue decodes a YAML document into a value tree.
func DecodeYAMLValue(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return v, nil
}
