package redis_test

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typeguard/pkg/adapters/redis"
	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunSchemaStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	err := store.Save(ctx, "short-lived", schema.String())
	require.NoError(t, err)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	// Expire the key in miniredis.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, ports.ErrSchemaNotFound)

	// The index is pruned against the wall clock, so real time must pass too.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_NoTTLNeverPruned(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "forever", schema.String()))

	score, err := mr.ZScore(redis.DefaultPrefix+"_index", "forever")
	require.NoError(t, err)
	assert.True(t, math.IsInf(score, 1), "score = %v", score)

	// Pruning at any finite instant, however far away, keeps the entry.
	farFuture := time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	require.NoError(t, client.ZRemRangeByScore(ctx, redis.DefaultPrefix+"_index", "-inf", strconv.FormatInt(farFuture, 10)).Err())

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "index", schema.NewFields(schema.Required("a", schema.String())))
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:index"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:_index"), "Expected index with custom prefix to exist")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, names)

	require.NoError(t, store.Ping(ctx))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	mr.Close()

	err := store.Save(context.Background(), "a", schema.String())
	assert.Error(t, err)

	_, err = store.Load(context.Background(), "a")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSchemaNotFound)
}
