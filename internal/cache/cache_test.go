package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func TestBundleCache_PutGet(t *testing.T) {
	c := NewBundleCache(time.Minute)
	bundle := &core.MapBundle{MapID: "dam", MapName: "Dam Battlegrounds"}

	_, ok := c.Get("dam")
	assert.False(t, ok, "empty cache misses")

	c.Put("dam", bundle)
	got, ok := c.Get("dam")
	require.True(t, ok)
	assert.Same(t, bundle, got)

	_, ok = c.Get("other")
	assert.False(t, ok)
}

func TestBundleCache_Expiry(t *testing.T) {
	c := NewBundleCache(time.Minute)
	clock := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Put("dam", &core.MapBundle{MapID: "dam"})

	clock = clock.Add(59 * time.Second)
	_, ok := c.Get("dam")
	assert.True(t, ok, "inside the TTL")

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("dam")
	assert.False(t, ok, "expired")

	// a fresh put revives the entry
	c.Put("dam", &core.MapBundle{MapID: "dam"})
	_, ok = c.Get("dam")
	assert.True(t, ok)
}

func TestBundleCache_DefaultTTL(t *testing.T) {
	c := NewBundleCache(0)
	assert.Equal(t, DefaultTTL, c.ttl)

	c = NewBundleCache(-time.Second)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestBundleCache_Reset(t *testing.T) {
	c := NewBundleCache(time.Minute)
	c.Put("dam", &core.MapBundle{MapID: "dam"})
	c.Put("coastal", &core.MapBundle{MapID: "coastal"})

	c.Reset()

	_, ok := c.Get("dam")
	assert.False(t, ok)
	_, ok = c.Get("coastal")
	assert.False(t, ok)
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	assert.Equal(t, 0, c.Value())

	c.Inc()
	c.Inc()
	assert.Equal(t, 2, c.Value())

	c.Set(10)
	assert.Equal(t, 10, c.Value())
}

func TestSafeCounter_Concurrent(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Value())
}
