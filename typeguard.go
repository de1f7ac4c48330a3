package typeguard

import (
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/validate"
)

// Version is the current release of the module.
const Version = "0.4.0"

// Validate checks value against a contract and returns the validated value.
//
// definition is either a schema.Definition or a raw definition tree accepted
// by schema.Parse: a type name, an example number or boolean, or a mapping of
// field name to {type, required}.
func Validate(definition any, value any, opts ...validate.Option) (any, error) {
	def, err := schema.Parse(definition)
	if err != nil {
		return nil, err
	}
	return validate.Validate(def, value, opts...)
}

// ValidateJSON parses a JSON contract and a JSON value, then validates.
// Field declaration order of the contract is kept, so errors are reported in
// document order.
func ValidateJSON(contract, value []byte, opts ...validate.Option) (any, error) {
	def, err := schema.ParseJSON(contract)
	if err != nil {
		return nil, err
	}
	decoded, err := DecodeValue(value)
	if err != nil {
		return nil, err
	}
	return validate.Validate(def, decoded, opts...)
}

// Conform coerces actual into the type implied by example and never fails.
func Conform(example any, actual any) any {
	return validate.Conform(example, actual)
}
