package store

import (
	"sync"
	"time"

	"github.com/kasiv/weather-lookup/internal/weather"
)

// entry is a cached result with its expiry.
type entry struct {
	result    weather.WeatherResult
	expiresAt time.Time
}

// MemoryCache is a concurrency-safe in-memory result cache with a fixed TTL.
// Expired entries are dropped lazily on read and swept on write.
type MemoryCache struct {
	mu sync.RWMutex

	data map[string]entry
	ttl  time.Duration
}

// NewMemoryCache creates a new MemoryCache. A ttl <= 0 disables expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]entry),
		ttl:  ttl,
	}
}

// Get returns the cached result for key if present and not expired.
func (c *MemoryCache) Get(key string) (weather.WeatherResult, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return weather.WeatherResult{}, false
	}
	if c.ttl > 0 && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return weather.WeatherResult{}, false
	}
	return e.result, true
}

// Set stores a result under key and sweeps any expired entries.
func (c *MemoryCache) Set(key string, res weather.WeatherResult) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 {
		for k, e := range c.data {
			if now.After(e.expiresAt) {
				delete(c.data, k)
			}
		}
	}

	c.data[key] = entry{
		result:    res,
		expiresAt: now.Add(c.ttl),
	}
}

// Len reports the number of cached entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
