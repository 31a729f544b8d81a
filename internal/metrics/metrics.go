// Package metrics exposes Prometheus instrumentation for the wrapped
// engine's orchestration layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the services report into.
type Metrics struct {
	SummariesComputed prometheus.Counter
	SummaryDuration   prometheus.Histogram
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	SyncRuns          *prometheus.CounterVec
	UpstreamErrors    prometheus.Counter
}

// New registers the collectors on the given registerer and returns them.
// Pass a fresh registry in tests to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SummariesComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewind_summaries_computed_total",
			Help: "Number of wrapped summaries computed from snapshots.",
		}),
		SummaryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rewind_summary_duration_seconds",
			Help:    "Wall time spent computing one wrapped summary.",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewind_summary_cache_hits_total",
			Help: "Summary requests served from the in-memory cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewind_summary_cache_misses_total",
			Help: "Summary requests that required recomputation or a store read.",
		}),
		SyncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewind_sync_runs_total",
			Help: "Account snapshot sync attempts by outcome.",
		}, []string{"outcome"}),
		UpstreamErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewind_upstream_errors_total",
			Help: "Errors returned by the upstream platform API.",
		}),
	}
}
