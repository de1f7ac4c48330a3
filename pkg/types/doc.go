// Package types is the primitive type registry used by the validator.
//
// Every registered kind exposes a strict membership predicate (Is). The three
// scalar kinds (str, number, bool) additionally expose a conversion into their
// canonical representation (To) and a canonical default value (Base):
//
//	t, _ := types.Lookup("boolean") // alias of "bool"
//	v, err := t.To("1")             // true, nil
//	b, _ := t.Base()                // false
//
// Structural kinds (obj, arr, undefined) only answer membership questions.
package types
