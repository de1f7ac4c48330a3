package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/typeguard/pkg/adapters/file"
	"github.com/aretw0/typeguard/pkg/adapters/memory"
	"github.com/aretw0/typeguard/pkg/adapters/redis"
	"github.com/aretw0/typeguard/pkg/ports"
)

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "memory", "Schema store: memory, file or redis")
	cmd.Flags().String("store-dir", "", "Directory of the file store (default .typeguard/schemas)")
	cmd.Flags().String("redis-addr", "localhost:6379", "Redis address")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().String("redis-prefix", redis.DefaultPrefix, "Redis key prefix")
}

// openStore builds the store selected by the flags. The returned function releases it.
func openStore(cmd *cobra.Command) (ports.SchemaStore, func() error, error) {
	kind, _ := cmd.Flags().GetString("store")
	noop := func() error { return nil }

	switch kind {
	case "memory":
		return memory.NewStore(), noop, nil
	case "file":
		dir, _ := cmd.Flags().GetString("store-dir")
		return file.New(dir), noop, nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		prefix, _ := cmd.Flags().GetString("redis-prefix")

		store := redis.New(addr, password, db, redis.WithPrefix(prefix))
		if err := store.Ping(cmd.Context()); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store: %s. Supported: memory, file, redis", kind)
	}
}
