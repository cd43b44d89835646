package shapeplan

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "shaping"
	metricsSubsystem = "plan"
)

var (
	plansCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "created_total",
		Help:      "Number of shape plans built.",
	})
	planFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "failures_total",
		Help:      "Number of plan requests answered with the inert plan.",
	})
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "cache_hits_total",
		Help:      "Number of cached plan requests served from a face's plan cache.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "cache_misses_total",
		Help:      "Number of cache lookups without a matching plan.",
	})
	uncacheable = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "uncacheable_total",
		Help:      "Number of cached plan requests which bypassed the cache.",
	})
	casRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "cache_insert_retries_total",
		Help:      "Number of plan cache insertions lost to a concurrent insertion.",
	})
)

// RegisterMetrics registers the plan cache metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		plansCreated, planFailures, cacheHits, cacheMisses, uncacheable, casRetries,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
