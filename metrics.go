package framegraph

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "framegraph"
	subsystem = "transient_cache"
)

// DefaultMetrics is shared by every graph and cache that is not given its
// own GraphMetrics. It is not registered anywhere until RegisterMetrics or
// MustRegister is called.
var DefaultMetrics = NewGraphMetrics()

// GraphMetrics holds prometheus collectors for compilation, execution and
// the transient resource cache.
type GraphMetrics struct {
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	cacheEvictions   prometheus.Counter
	resourcesCreated *prometheus.CounterVec
	passesExecuted   prometheus.Counter
	passesCulled     prometheus.Counter
	executeDuration  *prometheus.HistogramVec
}

// NewGraphMetrics creates an unregistered set of collectors.
func NewGraphMetrics() *GraphMetrics {
	return &GraphMetrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "hits_total",
			Help:      "Resource requests served from the transient cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "misses_total",
			Help:      "Resource requests the transient cache could not serve.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evictions_total",
			Help:      "Pooled resources evicted and destroyed.",
		}),
		resourcesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_created_total",
				Help:      "Resources created through the device.",
			},
			[]string{"kind"},
		),
		passesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_executed_total",
			Help:      "Device passes executed.",
		}),
		passesCulled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_culled_total",
			Help:      "Passes removed by culling at compile time.",
		}),
		executeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "execute_duration_seconds",
				Help:      "Frame execution time in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
			},
			[]string{"result"}, // "success" or "error"
		),
	}
}

func (m *GraphMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.cacheHits,
		m.cacheMisses,
		m.cacheEvictions,
		m.resourcesCreated,
		m.passesExecuted,
		m.passesCulled,
		m.executeDuration,
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *GraphMetrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.collectors()...)
}

// Register registers the metrics, ignoring collectors already registered
// with registry.
func (m *GraphMetrics) Register(registry prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// RegisterMetrics registers DefaultMetrics with registry.
func RegisterMetrics(registry prometheus.Registerer) error {
	return DefaultMetrics.Register(registry)
}

// ObserveExecute records one frame execution.
func (m *GraphMetrics) ObserveExecute(durationSeconds float64, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.executeDuration.WithLabelValues(result).Observe(durationSeconds)
}
