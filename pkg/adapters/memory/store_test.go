package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard/pkg/adapters/memory"
	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSchemaStoreContract(t, store)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("s%d", i%5)
			_ = store.Save(ctx, name, schema.NewFields(schema.Required("a", schema.String())))
			_, _ = store.Load(ctx, name)
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s1", "s2", "s3", "s4"}, names)
}
