// Package cache stores derived route results so repeated queries against
// the same graph skip the search.
//
// Entries are opaque byte slices addressed by string keys. Keys are built
// by a [Keyer] from a hash of the rendered graph, so editing the graph
// file naturally invalidates every entry computed from the old version.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: in-process map, used by the HTTP server and tests
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry reports
	// hit=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for cached entries.
const (
	TTLRoute    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend   string
	Dir       string // FileCache directory
	RedisAddr string
	RedisDB   int
	Prefix    string // key prefix applied by RedisCache
}

// Open creates the cache described by opts. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{Addr: opts.RedisAddr, DB: opts.RedisDB, Prefix: opts.Prefix})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
