// Package kvstore is the persistence substrate: a flat key-value store
// holding JSON-encoded collections under fixed keys. There are no
// transactions and no locking across processes; concurrent writers are
// last-write-wins by contract.
package kvstore

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Store is the minimal contract every backend implements. Get reports
// absence through its second return value rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Driver        string // memory, badger, redis, gorm
	BadgerPath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseDSN   string
}

// Open returns a ready-to-use store for the configured driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "memory":
		return NewMemory(), nil
	case "badger":
		return OpenBadger(opts.BadgerPath)
	case "redis":
		return NewRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case "gorm", "sqlite", "postgres":
		return OpenGorm(opts.DatabaseDSN)
	default:
		return nil, errors.Errorf("kvstore: unknown driver %q", opts.Driver)
	}
}

// isPostgresDSN distinguishes a postgres connection string from a
// sqlite file path.
func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
