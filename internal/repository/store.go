package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is durable local key-value storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	// SetValues writes all values or none of them.
	SetValues(ctx context.Context, values map[string]string) error
	Close() error
}

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type StoreConfig struct {
	Kind        string
	SQLitePath  string
	DatabaseURL string
	RedisURL    string
}

// OpenStore opens the key-value backend selected by cfg.Kind.
func OpenStore(ctx context.Context, cfg StoreConfig) (KeyValueStore, error) {
	switch cfg.Kind {
	case StoreSQLite, "":
		return OpenSQLiteStore(ctx, cfg.SQLitePath)
	case StorePostgres:
		return OpenPostgresStore(ctx, cfg.DatabaseURL)
	case StoreRedis:
		return OpenRedisStore(ctx, cfg.RedisURL)
	case StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Kind)
	}
}
