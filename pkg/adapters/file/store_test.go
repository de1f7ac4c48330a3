package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard/pkg/adapters/file"
	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSchemaStoreContract(t, store)
}

func TestFileStore_ReadableOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	def := schema.NewFields(schema.Required("b", schema.Number()), schema.Optional("a", schema.String()))
	require.NoError(t, store.Save(ctx, "order", def))

	data, err := os.ReadFile(filepath.Join(dir, "order.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":{"type":"number","required":true},"a":{"type":"string","required":false}}`, string(data))

	// Hand-written files are picked up too.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.json"), []byte(`"boolean"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manual", "order"}, names)

	loaded, err := store.Load(ctx, "manual")
	require.NoError(t, err)
	assert.Equal(t, schema.Boolean(), loaded)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"a":`), 0o644))

	_, err := file.New(dir).Load(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSchemaNotFound)
}
