package predict

import (
	"sync"
	"time"

	"github.com/Veraticus/playdash/internal/model"
)

// defaultCacheTTL applies when WithCache is given a zero TTL.
const defaultCacheTTL = 15 * time.Minute

// cacheEntry represents a cached raw model output.
type cacheEntry struct {
	expiry time.Time
	raw    float64
}

// vectorCache provides thread-safe caching of model outputs keyed by feature vector.
type vectorCache struct {
	entries map[model.FeatureVector]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newVectorCache creates a cache with the specified TTL and starts its sweeper.
func newVectorCache(ttl time.Duration) *vectorCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache := &vectorCache{
		entries: make(map[model.FeatureVector]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup(sweepInterval(ttl))

	return cache
}

// get returns the cached output for x if it exists and hasn't expired.
func (c *vectorCache) get(x model.FeatureVector) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[x]
	if !ok || time.Now().After(entry.expiry) {
		return 0, false
	}
	return entry.raw, true
}

// set stores an output in the cache.
func (c *vectorCache) set(x model.FeatureVector, raw float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[x] = cacheEntry{
		raw:    raw,
		expiry: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *vectorCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries, expired ones included until the next sweep.
func (c *vectorCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// close stops the sweeper. It is safe to call more than once.
func (c *vectorCache) close() {
	c.once.Do(func() { close(c.stopCh) })
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}
