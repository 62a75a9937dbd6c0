package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UpstreamRequests    *prometheus.CounterVec
	UpstreamDuration    *prometheus.HistogramVec
	HitsProcessed       *prometheus.CounterVec
	SearchResults       *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		UpstreamRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_upstream_requests_total",
				Help: "Total number of calls to web search providers.",
			},
			[]string{"provider", "outcome"}, // outcome: ok, error
		)

		UpstreamDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mina_upstream_duration_seconds",
				Help:    "Duration of web search provider calls.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider"},
		)

		HitsProcessed = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_hits_extracted_total",
				Help: "Search hits run through extraction, by outcome.",
			},
			[]string{"outcome"}, // accepted, rejected, duplicate
		)

		SearchResults = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_search_results_total",
				Help: "Completed search requests by mode and result source.",
			},
			[]string{"mode", "source"},
		)
	})
}
