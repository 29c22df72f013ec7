// Package kv is the key-value substrate shared by the spec and session stores.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizmatters/usdc-actions/internal/config"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat byte-valued key-value store.
// Put overwrites; Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by backends with a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it supports it and succeeds otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Open creates the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverBolt:
		return NewBoltStore(cfg.BoltPath)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.PostgresURL)
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
