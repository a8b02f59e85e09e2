// Package storage provides the key-value byte store that holds the JSON-encoded
// collections. Backends: SQLite (default), PostgreSQL and in-memory.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/repbook/internal/config"
)

// ErrNotFound is returned by Get when the key has never been set or was removed.
var ErrNotFound = errors.New("key not found")

// KV is a string-keyed byte store with whole-value writes. There are no
// transactions: concurrent writers to one key get last-write-wins.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open creates the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return OpenSQLite(cfg.Path)
	case "postgres":
		if err := RunMigrations(cfg.DSN); err != nil {
			return nil, err
		}
		return NewPostgres(ctx, cfg.DSN)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
