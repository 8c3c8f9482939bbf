package framegraph

import "github.com/gogpu/framegraph/internal/cache"

// CacheConfig configures a TransientResourceCache.
type CacheConfig struct {
	// MaxPooled is the soft limit on pooled resources across all
	// descriptors. Returning a resource beyond it evicts the oldest
	// pooled ones. Default: 256.
	MaxPooled int

	// MaxIdleFrames destroys pooled resources that have not been reused
	// for more than this many frames. Default: 0 (never age out).
	MaxIdleFrames int

	// Metrics receives hit, miss and eviction counts.
	// Default: DefaultMetrics.
	Metrics *GraphMetrics
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxPooled:     256,
		MaxIdleFrames: 0,
	}
}

// TransientResourceCache pools graph-owned resources across frames, keyed
// by descriptor (label excluded). A resource released by one frame is
// handed to the next request with an equal descriptor instead of asking
// the device for a new one.
//
// The cache is safe for concurrent use, but a frame borrows from and
// returns to it as a unit: callers executing several graphs against one
// cache must serialize the executions.
type TransientResourceCache struct {
	pool    *cache.Pool[PoolKey, Resource]
	maxIdle int
	metrics *GraphMetrics
}

// NewTransientResourceCache creates an empty cache.
func NewTransientResourceCache(cfg CacheConfig) *TransientResourceCache {
	if cfg.MaxPooled <= 0 {
		cfg.MaxPooled = 256
	}
	if cfg.MaxIdleFrames < 0 {
		cfg.MaxIdleFrames = 0
	}
	if cfg.Metrics == nil {
		cfg.Metrics = DefaultMetrics
	}

	return &TransientResourceCache{
		pool:    cache.NewPool[PoolKey, Resource](cfg.MaxPooled),
		maxIdle: cfg.MaxIdleFrames,
		metrics: cfg.Metrics,
	}
}

// Get takes a pooled resource matching desc.
func (c *TransientResourceCache) Get(desc Descriptor) (Resource, bool) {
	res, ok := c.pool.Take(desc.PoolKey())
	if ok {
		c.metrics.cacheHits.Inc()
		Logger().Debug("framegraph: cache hit", "kind", desc.Kind(), "label", desc.DescriptorLabel())
	} else {
		c.metrics.cacheMisses.Inc()
		Logger().Debug("framegraph: cache miss", "kind", desc.Kind(), "label", desc.DescriptorLabel())
	}
	return res, ok
}

// Put returns res to the pool. Resources evicted to stay within
// MaxPooled are returned; the caller must destroy them.
func (c *TransientResourceCache) Put(res Resource) []Resource {
	evicted := c.pool.Put(res.Descriptor().PoolKey(), res)
	c.noteEvicted(evicted, "soft limit")
	return evicted
}

// EndFrame advances the cache's frame clock and destroys resources idle
// for more than MaxIdleFrames. It returns the number destroyed.
func (c *TransientResourceCache) EndFrame(device Device) int {
	evicted := c.pool.Sweep(c.maxIdle)
	c.noteEvicted(evicted, "idle")
	for _, res := range evicted {
		device.DestroyResource(res)
	}
	return len(evicted)
}

// Destroy empties the cache, destroying every pooled resource.
func (c *TransientResourceCache) Destroy(device Device) {
	for _, res := range c.pool.Drain() {
		device.DestroyResource(res)
	}
}

// Len returns the number of pooled resources.
func (c *TransientResourceCache) Len() int { return c.pool.Len() }

// Count returns the number of pooled resources interchangeable with desc.
func (c *TransientResourceCache) Count(desc Descriptor) int {
	return c.pool.Count(desc.PoolKey())
}

// CacheStats contains transient cache statistics.
type CacheStats = cache.Stats

// Stats returns pool statistics.
func (c *TransientResourceCache) Stats() CacheStats { return c.pool.Stats() }

func (c *TransientResourceCache) noteEvicted(evicted []Resource, reason string) {
	if len(evicted) == 0 {
		return
	}
	c.metrics.cacheEvictions.Add(float64(len(evicted)))
	Logger().Warn("framegraph: evicting pooled resources", "count", len(evicted), "reason", reason)
}
