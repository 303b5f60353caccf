package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds, including enrichment",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"entity", "mode"},
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_results_total",
			Help:      "Total rows returned by searches",
		},
		[]string{"entity"},
	)

	SearchEmptyQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_empty_queries_total",
			Help:      "Searches short-circuited because nothing searchable remained",
		},
		[]string{"entity"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_errors_total",
			Help:      "Record source and enrichment failures",
		},
		[]string{"entity", "op"},
	)

	EnrichmentFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_enrichment_fallbacks_total",
			Help:      "Enrichments replaced by declared defaults after a failure",
		},
		[]string{"entity", "enrichment"},
	)

	EnrichmentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_cache_total",
			Help:      "Enrichment cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerOnce sync.Once

// Register registers HTTP and search metrics with the default registry.
// Must be called from main; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SearchDuration,
			SearchResultsTotal,
			SearchEmptyQueriesTotal,
			SearchErrorsTotal,
			EnrichmentFallbacksTotal,
			EnrichmentCacheTotal,
		)
	})
}
