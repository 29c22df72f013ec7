package helpers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bizmatters/usdc-actions/internal/config"
	"github.com/bizmatters/usdc-actions/internal/kv"
)

// Backends opens one store per storage driver available to the test run.
// Memory and bolt are always present; postgres and redis join when
// DATABASE_URL and REDIS_ADDR are set.
func Backends(t *testing.T) map[string]kv.Store {
	t.Helper()

	configs := map[string]config.StorageConfig{
		config.DriverMemory: {Driver: config.DriverMemory},
		config.DriverBolt: {
			Driver:   config.DriverBolt,
			BoltPath: filepath.Join(t.TempDir(), "test.db"),
		},
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		configs[config.DriverPostgres] = config.StorageConfig{Driver: config.DriverPostgres, PostgresURL: url}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		configs[config.DriverRedis] = config.StorageConfig{
			Driver:        config.DriverRedis,
			RedisAddr:     addr,
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
		}
	}

	stores := make(map[string]kv.Store, len(configs))
	for name, cfg := range configs {
		store, err := kv.Open(context.Background(), cfg)
		require.NoError(t, err, "open %s backend", name)
		t.Cleanup(func() { _ = store.Close() })
		stores[name] = store
	}
	return stores
}
