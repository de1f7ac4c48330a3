package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard/pkg/schema"
)

// RunSchemaStoreContract runs a suite of tests to verify that a SchemaStore implementation
// adheres to the defined interface contract.
func RunSchemaStoreContract(t *testing.T, store SchemaStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	def := schema.NewFields(
		schema.Required("zeta", schema.String()),
		schema.Optional("alpha", schema.NewObject(
			schema.Prop("second", schema.Number()),
			schema.Prop("first", schema.Boolean()),
		)),
		schema.Optional("items", schema.Array(schema.NewObject(schema.Prop("id", schema.Number())))),
	)

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, def))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		// Field and key order must survive persistence.
		assert.Equal(t, def, loaded)
	})

	t.Run("Save scalar", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name+"-scalar", schema.Number()))
		defer func() { _ = store.Delete(ctx, name+"-scalar") }()

		loaded, err := store.Load(ctx, name+"-scalar")
		require.NoError(t, err)
		assert.Equal(t, schema.Number(), loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := schema.NewFields(schema.Optional("only", schema.String()))
		require.NoError(t, store.Save(ctx, name, replacement))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, replacement, loaded)
	})

	t.Run("Isolation", func(t *testing.T) {
		fields := schema.NewFields(schema.Required("a", schema.String()))
		require.NoError(t, store.Save(ctx, name+"-iso", fields))
		defer func() { _ = store.Delete(ctx, name+"-iso") }()

		fields[0].Name = "mutated"
		loaded, err := store.Load(ctx, name+"-iso")
		require.NoError(t, err)
		assert.Equal(t, "a", loaded.(schema.Fields)[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrSchemaNotFound)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "../escape", def), ErrInvalidName)
		_, err := store.Load(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("Invalid Definition", func(t *testing.T) {
		err := store.Save(ctx, name+"-bad", schema.Primitive{Name: "date"})
		var defErr *schema.DefinitionError
		assert.ErrorAs(t, err, &defErr)

		err = store.Save(ctx, name+"-bad", schema.NewObject(schema.Prop("a", schema.String())))
		assert.ErrorAs(t, err, &defErr)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, def))
		require.NoError(t, store.Delete(ctx, name))

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, ErrSchemaNotFound, "Load after Delete should return ErrSchemaNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		require.NoError(t, store.Save(ctx, id1, def))
		require.NoError(t, store.Save(ctx, id2, def))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
