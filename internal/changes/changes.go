// Package changes describes what validation did to a value as an RFC 7386
// JSON merge patch: coerced fields carry their new value and dropped keys
// are present with a null value.
package changes

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// Diff returns the merge patch that turns before into after.
// It returns nil when both values serialize to the same JSON.
func Diff(before, after any) (json.RawMessage, error) {
	original, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}
	modified, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	if bytes.Equal(original, modified) {
		return nil, nil
	}

	// Merge patches only describe objects; any other document is replaced whole.
	if !isObject(original) || !isObject(modified) {
		return modified, nil
	}

	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to compute changes: %w", err)
	}
	if bytes.Equal(patch, []byte("{}")) {
		return nil, nil
	}
	return patch, nil
}

// Apply applies a patch produced by Diff to before.
func Apply(before any, patch json.RawMessage) (json.RawMessage, error) {
	original, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}
	if len(patch) == 0 {
		return original, nil
	}
	if !isObject(patch) {
		return patch, nil
	}
	if !isObject(original) {
		original = []byte("{}")
	}
	return jsonpatch.MergePatch(original, patch)
}

func isObject(doc []byte) bool {
	doc = bytes.TrimSpace(doc)
	return len(doc) > 0 && doc[0] == '{'
}
