package framegraph

// Option configures a FrameGraph during creation.
//
// Example:
//
//	cache := framegraph.NewTransientResourceCache(framegraph.CacheConfig{MaxPooled: 64})
//	g := framegraph.New(framegraph.WithCache(cache), framegraph.WithCulling(true))
type Option func(*graphOptions)

// graphOptions holds optional configuration for FrameGraph creation.
type graphOptions struct {
	cache   *TransientResourceCache
	culling bool
	metrics *GraphMetrics
}

// defaultOptions returns the default graph options.
func defaultOptions() graphOptions {
	return graphOptions{
		cache:   nil, // Will be created with DefaultCacheConfig if nil
		culling: false,
		metrics: nil, // DefaultMetrics if nil
	}
}

// WithCache sets the transient resource cache the graph pools into.
// Several graphs may share one cache as long as their frames do not
// execute concurrently.
func WithCache(c *TransientResourceCache) Option {
	return func(o *graphOptions) {
		o.cache = c
	}
}

// WithCulling enables removal of passes whose outputs never reach a
// root pass. Roots are passes marked with SideEffect and passes that
// write an imported resource.
//
// Culling is off by default: every declared pass runs in declaration order.
func WithCulling(enabled bool) Option {
	return func(o *graphOptions) {
		o.culling = enabled
	}
}

// WithMetrics sets the collectors compile and execute report to.
// The graph does not register them.
func WithMetrics(m *GraphMetrics) Option {
	return func(o *graphOptions) {
		o.metrics = m
	}
}
