package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamedex_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// CacheLookups counts cache lookups by endpoint and outcome (hit|miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamedex_cache_lookups_total",
			Help: "Total number of catalog cache lookups",
		},
		[]string{"endpoint", "result"},
	)

	// UpstreamRequests counts calls to the upstream catalog API by outcome (success|error).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamedex_upstream_requests_total",
			Help: "Total number of upstream catalog requests",
		},
		[]string{"result"},
	)

	// CacheEntriesSwept tracks entries removed by the periodic cache sweep.
	CacheEntriesSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamedex_cache_entries_swept_total",
			Help: "Total number of expired cache entries removed by the sweeper",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamedex_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
