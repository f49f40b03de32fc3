// Package kvstore is the string-keyed blob store the menu store persists
// into. Each key holds one whole serialized document; there is no partial
// update and no cross-key transaction.
//
// Drivers:
//
//	memory  process-local map (tests, demos)
//	redis   one Redis string per key
//	sql     one row per key in the kv_entries table (any GORM dialect)
//	disk    one <key>.json object on a storage.Disk (local or S3)
package kvstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/pkg/metrics"
	"github.com/shashiranjanraj/qrmenu/pkg/storage"
)

// Store is implemented by every driver.
type Store interface {
	// Get returns the value at key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Driver() string
	Close() error
}

// Deps carries the already-open handles drivers may need.
type Deps struct {
	DB   *gorm.DB
	Disk storage.Disk
}

// Options selects and configures a driver.
type Options struct {
	Driver        string
	Prefix        string
	RedisAddr     string
	RedisPassword string
}

// Open builds the configured driver, wrapped with key prefixing and
// metrics.
func Open(ctx context.Context, opts Options, deps Deps) (Store, error) {
	var (
		s   Store
		err error
	)

	switch opts.Driver {
	case "memory":
		s = NewMemory()
	case "redis":
		s, err = NewRedis(ctx, opts.RedisAddr, opts.RedisPassword)
	case "sql":
		if deps.DB == nil {
			return nil, fmt.Errorf("kvstore: sql driver needs a database")
		}
		s = NewSQL(deps.DB)
	case "disk":
		if deps.Disk == nil {
			return nil, fmt.Errorf("kvstore: disk driver needs a storage disk")
		}
		s = NewDisk(deps.Disk, "kv")
	default:
		return nil, fmt.Errorf("kvstore: unknown driver %q (supported: memory, redis, sql, disk)", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if opts.Prefix != "" {
		s = WithPrefix(s, opts.Prefix)
	}
	return Instrument(s), nil
}

// ─── Prefixing ────────────────────────────────────────────────────────────────

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key of s, so several deployments can share
// one Redis database or table.
func WithPrefix(s Store, prefix string) Store {
	return &prefixed{Store: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.Store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.Store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.prefix+key)
}

// ─── Metrics ──────────────────────────────────────────────────────────────────

type instrumented struct {
	Store
}

// Instrument records the latency of every call in
// qrmenu_store_duration_seconds.
func Instrument(s Store) Store {
	return &instrumented{Store: s}
}

func (i *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	defer metrics.ObserveStore(i.Driver(), "get", time.Now())
	return i.Store.Get(ctx, key)
}

func (i *instrumented) Set(ctx context.Context, key, value string) error {
	defer metrics.ObserveStore(i.Driver(), "set", time.Now())
	return i.Store.Set(ctx, key, value)
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	defer metrics.ObserveStore(i.Driver(), "delete", time.Now())
	return i.Store.Delete(ctx, key)
}
