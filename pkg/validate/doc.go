// Package validate enforces schema contracts on dynamically typed values.
//
// Leaves go through two steps: an optional coercion into the declared type
// (with an optional fallback to the type's base value), then a strict
// membership check. Nested objects are walked recursively and lose every key
// their shape does not declare; the first invalid leaf aborts the walk.
// Top-level fields are all evaluated and every failure is reported together:
//
//	out, err := validate.Validate(contract, payload, validate.WithCoercion())
//	for _, fe := range validate.Errors(err) {
//	    fmt.Println(fe.Kind, fe.Path)
//	}
//
// Validation never modifies its input; the returned tree is new.
package validate
