// Package schema defines type contracts for dynamically typed input trees.
//
// A contract is a Definition, a closed set of variants:
//
//   - Primitive: a scalar leaf (string, number, boolean);
//   - Fields: the ordered top-level fields of a structured contract, each
//     with a required flag;
//   - *Object: a closed nested mapping shape;
//   - ArrayOf: a list whose items follow an *Object shape.
//
// Contracts can be built programmatically:
//
//	contract := schema.NewFields(
//	    schema.Required("name", schema.String()),
//	    schema.Optional("retries", schema.Number()),
//	    schema.Optional("owner", schema.NewObject(
//	        schema.Prop("email", schema.String()),
//	    )),
//	    schema.Optional("tags", schema.Array(schema.NewObject(
//	        schema.Prop("label", schema.String()),
//	    ))),
//	)
//
// or parsed from raw trees and documents, in which case declaration order is
// kept for YAML and JSON input:
//
//	name:
//	  type: string
//	  required: true
//	owner:
//	  type: {email: string}
//	tags:
//	  type: [{label: string}]
//
// Definitions are read-only once built. Check rejects malformed, cyclic and
// overly deep contracts; the validator runs it before every traversal.
package schema
