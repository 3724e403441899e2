// Package cache provides an injected page cache keyed by query fingerprint.
// It is constructed once in main and handed to the repository; nothing in
// this service holds cache state at package level.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/maxviazov/user-stream-service/internal/model"
)

// PageCache memoizes page fetches for their TTL. A nil *PageCache is a
// valid no-op cache, so callers never need to branch on "caching enabled".
type PageCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// New sizes the ristretto cache for maxEntries cached pages.
func New(maxEntries int64, ttl time.Duration) (*PageCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &PageCache{cache: c, ttl: ttl}, nil
}

// Fingerprint derives the cache key for a parameterized query.
func Fingerprint(sql string, args ...any) string {
	var b strings.Builder
	b.WriteString(sql)
	for _, a := range args {
		fmt.Fprintf(&b, "|%v", a)
	}
	return b.String()
}

// Get returns the cached page for the fingerprint, if still fresh.
func (c *PageCache) Get(fingerprint string) ([]model.User, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.cache.Get(fingerprint)
	if !ok {
		return nil, false
	}
	users, ok := v.([]model.User)
	return users, ok
}

// Set stores a fetched page under its fingerprint. Each page costs one
// unit regardless of length; page sizes are bounded by the caller anyway.
func (c *PageCache) Set(fingerprint string, users []model.User) {
	if c == nil {
		return
	}
	c.cache.SetWithTTL(fingerprint, users, 1, c.ttl)
}

// Wait blocks until buffered writes are applied. Ristretto admits
// entries asynchronously; tests need this to observe their own Sets.
func (c *PageCache) Wait() {
	if c != nil {
		c.cache.Wait()
	}
}

// Close releases the cache's internal goroutines.
func (c *PageCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}
