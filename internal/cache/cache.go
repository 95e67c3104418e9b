// Package cache keeps fetched map snapshots in memory so repeated planning
// calls against the same map skip the map data service.
package cache

import (
	"sync"
	"time"

	"github.com/raidtools/lootrun/pkg/core"
)

// DefaultTTL bounds snapshot staleness; ARC rotations change within a day.
const DefaultTTL = 15 * time.Minute

type entry struct {
	bundle  *core.MapBundle
	fetched time.Time
}

// BundleCache caches map snapshots keyed by map ID. Latency in planning calls
// matters more than freshness, so reads never block on refetch.
type BundleCache struct {
	m       sync.Mutex
	ttl     time.Duration
	bundles map[string]entry
	now     func() time.Time
}

// NewBundleCache creates a cache with the given TTL; non-positive values use
// DefaultTTL.
func NewBundleCache(ttl time.Duration) *BundleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BundleCache{
		ttl:     ttl,
		bundles: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot for mapID, or false when absent or expired.
func (c *BundleCache) Get(mapID string) (*core.MapBundle, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	e, ok := c.bundles[mapID]
	if !ok || c.now().Sub(e.fetched) > c.ttl {
		return nil, false
	}
	return e.bundle, true
}

// Put stores a snapshot for mapID.
func (c *BundleCache) Put(mapID string, bundle *core.MapBundle) {
	c.m.Lock()
	defer c.m.Unlock()
	c.bundles[mapID] = entry{bundle: bundle, fetched: c.now()}
}

// Reset drops all cached snapshots.
func (c *BundleCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.bundles = make(map[string]entry)
}

// SafeCounter is a thread-safe counter.
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
