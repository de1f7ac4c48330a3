/*
Package typeguard enforces declarative type contracts on dynamically typed input trees at runtime.

Inputs that arrive untyped (decoded JSON or YAML payloads, form values, tool arguments) are checked against a contract, optionally coerced into the declared types, and every violation is reported at once.

# Concept

A contract is either a bare primitive ("string", "number", "boolean") or a mapping of named fields, each with a type and a required flag. Field types may be primitives, nested object shapes, or lists of object shapes.

  - Scalar mode: a primitive contract checks a single value and fails with one error.
  - Structured mode: every field is evaluated and all failures are returned together (fail-slow).
  - Nested objects are closed shapes: undeclared keys are dropped. Undeclared top-level keys are kept.
  - Coercion is opt-in. With the base fallback, values that cannot be converted become the type's default ("", 0, false).

# Usage

	contract := map[string]any{
		"name":  map[string]any{"type": "string", "required": true},
		"port":  map[string]any{"type": "number"},
		"owner": map[string]any{"type": map[string]any{"email": "string"}},
	}

	out, err := typeguard.Validate(contract, payload, validate.WithCoercion())
	if err != nil {
		for _, fe := range validate.Errors(err) {
			log.Printf("%s: %s", fe.Kind, fe.Path)
		}
	}

Contracts can also be built with the helpers of package schema, or loaded from YAML and JSON documents with schema.LoadFile, which keeps field declaration order.

# Adapters

  - pkg/adapters/http: JSON API for ad-hoc and stored contracts, with Prometheus metrics.
  - pkg/adapters/mcp: Model Context Protocol tools for agents.
  - pkg/adapters/memory, pkg/adapters/file, pkg/adapters/redis: stores for named contracts.
*/
package typeguard
