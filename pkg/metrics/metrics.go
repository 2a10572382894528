// Package metrics records descriptor resolution activity with Prometheus.
//
// # Basic Usage
//
//	collector := metrics.Default()
//	timer := metrics.NewTimer()
//	desc, err := factory.CreateSource(ctx, c)
//	collector.ObserveResolution(metrics.DirectionSource, metrics.StatusOf(err), timer.Stop())
//
// Tests create their own collector with NewCollector so that counts do not
// leak between test cases.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values
const (
	DirectionSink   = "sink"
	DirectionSource = "source"

	StatusSuccess = "success"
	StatusFailure = "failure"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Collector holds the resolution metrics registered on one registry
type Collector struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec   // resolutions by direction and status
	latency     *prometheus.HistogramVec // resolution latency by direction
	cache       *prometheus.CounterVec   // descriptor cache lookups by result
}

var (
	defaultOnce      sync.Once
	defaultCollector *Collector
)

// Default returns the process-wide collector registered on the Prometheus
// default registerer.
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = newCollector(prometheus.DefaultRegisterer, nil)
	})
	return defaultCollector
}

// NewCollector creates a collector on a fresh registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	return newCollector(reg, reg)
}

func newCollector(registerer prometheus.Registerer, registry *prometheus.Registry) *Collector {
	factory := promauto.With(registerer)
	return &Collector{
		registry: registry,
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lakesoul_descriptor_resolutions_total",
				Help: "Total number of connector descriptor resolutions",
			},
			[]string{"direction", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lakesoul_descriptor_resolution_seconds",
				Help: "Connector descriptor resolution latency in seconds",
				Buckets: []float64{
					1e-5, // 10μs
					1e-4, // 100μs
					1e-3, // 1ms
					1e-2, // 10ms
					1e-1, // 100ms
				},
			},
			[]string{"direction"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lakesoul_descriptor_cache_total",
				Help: "Descriptor cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry returns the collector's own registry, or nil for Default
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveResolution records one descriptor resolution
func (c *Collector) ObserveResolution(direction, status string, d time.Duration) {
	c.resolutions.WithLabelValues(direction, status).Inc()
	c.latency.WithLabelValues(direction).Observe(d.Seconds())
}

// ObserveCache records a descriptor cache lookup
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.cache.WithLabelValues(CacheHit).Inc()
		return
	}
	c.cache.WithLabelValues(CacheMiss).Inc()
}

// Resolutions returns the resolution counter for direction and status
func (c *Collector) Resolutions(direction, status string) prometheus.Counter {
	return c.resolutions.WithLabelValues(direction, status)
}

// CacheLookups returns the cache counter for a result label
func (c *Collector) CacheLookups(result string) prometheus.Counter {
	return c.cache.WithLabelValues(result)
}

// StatusOf maps an error to a status label
func StatusOf(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// Timer measures the duration of one operation
type Timer struct {
	start time.Time
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the time elapsed since the timer started. It may be called
// more than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
