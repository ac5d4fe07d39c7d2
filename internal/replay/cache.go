package replay

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/middlegame/internal/stats"
)

// Cache memoizes replayed positions keyed by game id and ply.
// Replaying a long game restarts from move zero every time, so repeated
// requests for the same snapshot are worth remembering.
type Cache struct {
	entries   *lru.Cache[string, string]
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int // Current number of entries
}

// HitRate returns the cache hit rate as a percentage.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// NewCache creates a replay cache holding up to capacity positions.
// The collector is optional; if nil, a no-op collector is used.
func NewCache(capacity int, collector stats.Collector) (*Cache, error) {
	entries, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Cache{
		entries:   entries,
		collector: collector,
	}, nil
}

// Get retrieves a cached position.
func (c *Cache) Get(key string) (string, bool) {
	pos, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
		c.collector.IncCounter(stats.MetricCacheHits, 1)
		return pos, true
	}
	c.misses.Add(1)
	c.collector.IncCounter(stats.MetricCacheMisses, 1)
	return "", false
}

// Set stores a position in the cache.
func (c *Cache) Set(key, pos string) {
	c.entries.Add(key, pos)
	c.collector.SetGauge(stats.MetricCacheSize, int64(c.entries.Len()))
}

// Purge removes every cached position. The hit and miss counters are
// cumulative and survive a purge.
func (c *Cache) Purge() {
	c.entries.Purge()
	c.collector.SetGauge(stats.MetricCacheSize, 0)
}

// Stats returns current cache statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.entries.Len(),
	}
}
