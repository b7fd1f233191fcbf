// Package cache provides explicit, caller-owned caches for layout results.
//
// # Overview
//
// Nothing in perktree keeps module-level state between calls. A caller that
// wants to reuse results creates a [Cache] and hands it to the pipeline
// runner; lifetime and invalidation are visible at the call site:
//
//	c := cache.NewMemoryCache()
//	defer c.Close()
//	runner := pipeline.NewRunner(c, nil, logger)
//
// Entries expire after the TTL given to [Cache.Set]. Expired entries are
// treated as misses and removed lazily; [MemoryCache.Purge] and
// [FileCache.Purge] remove them eagerly.
//
// # Implementations
//
//   - [MemoryCache]: in-process map, safe for concurrent use
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect the
// result, so a change to either produces a new key rather than a stale hit.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// itself failed. A ttl of zero or less stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
