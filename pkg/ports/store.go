package ports

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/aretw0/typeguard/pkg/schema"
)

var (
	// ErrSchemaNotFound is returned when no contract is stored under a name.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrInvalidName is returned for names that cannot be used as store keys.
	ErrInvalidName = errors.New("invalid schema name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// CheckName reports whether name can be used as a contract name.
// Names start with a letter or digit and contain only letters, digits, '.', '_' and '-'.
func CheckName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// SchemaStore defines the interface for persisting named contracts.
type SchemaStore interface {
	// Save stores def under name, replacing any previous contract.
	Save(ctx context.Context, name string, def schema.Definition) error

	// Load retrieves the contract stored under name.
	// Returns ErrSchemaNotFound if nothing is stored.
	Load(ctx context.Context, name string) (schema.Definition, error)

	// Delete removes the contract stored under name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in lexical order.
	List(ctx context.Context) ([]string, error)
}

// EncodeSchema checks def and serializes it for storage.
// Only top-level contracts (a primitive or a set of fields) can be stored.
func EncodeSchema(def schema.Definition) ([]byte, error) {
	if err := schema.Check(def, schema.MaxParseDepth); err != nil {
		return nil, err
	}
	switch def.(type) {
	case schema.Primitive, schema.Fields:
	default:
		return nil, &schema.DefinitionError{Reason: fmt.Sprintf("cannot store a %s definition", def.Kind())}
	}
	return schema.Marshal(def)
}

// DecodeSchema parses a contract produced by EncodeSchema.
func DecodeSchema(data []byte) (schema.Definition, error) {
	return schema.ParseJSON(data)
}
