package server

import (
	"sync"
	"time"
)

const (
	// DefaultChartTTL is how long a rendered chart is served from the cache.
	DefaultChartTTL = 10 * time.Minute
	// DefaultMaxCharts bounds the number of cached charts.
	DefaultMaxCharts = 256
)

type chartCacheEntry struct {
	createdAt time.Time
	image     []byte
}

// ChartCache keeps rendered PNG charts keyed by their query. Keys come from
// clients, so entries expire after the TTL and the oldest entry is evicted
// once the cache is full.
type ChartCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	mu         sync.Mutex
	entries    map[string]chartCacheEntry
}

// NewChartCache creates a cache whose entries expire after ttl and which holds
// at most maxEntries charts. Non-positive values select the defaults.
func NewChartCache(ttl time.Duration, maxEntries int) *ChartCache {
	if ttl <= 0 {
		ttl = DefaultChartTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCharts
	}
	return &ChartCache{ttl: ttl, maxEntries: maxEntries, now: time.Now, entries: map[string]chartCacheEntry{}}
}

// Get returns a copy of the cached image for key if it has not expired.
func (c *ChartCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if c.fresh(entry, c.now()) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

// Set stores img under key, dropping expired entries and, when the cache is
// still full, the oldest one.
func (c *ChartCache) Set(key string, img []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if !c.fresh(entry, now) {
			delete(c.entries, k)
		}
	}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = chartCacheEntry{createdAt: now, image: img}
}

// Len reports the number of entries, expired ones included.
func (c *ChartCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ChartCache) fresh(entry chartCacheEntry, now time.Time) bool {
	return now.Before(entry.createdAt.Add(c.ttl))
}

// evictOldest must be called with mu held.
func (c *ChartCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, entry := range c.entries {
		if first || entry.createdAt.Before(oldest) {
			oldestKey, oldest, first = k, entry.createdAt, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
