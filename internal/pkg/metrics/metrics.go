package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "carbon_calc"

// Route cache lookup outcomes.
const (
	RouteMemoryHit = "memory_hit"
	RouteHit       = "hit"
	RouteMiss      = "miss"
	RouteStale     = "stale"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EmissionsCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emissions_calculations_total",
			Help:      "Flight emission calculations by flight length class",
		},
		[]string{"class", "short_haul_fallback"},
	)

	RouteCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_cache_lookups_total",
			Help:      "Route cache lookups by outcome",
		},
		[]string{"result"},
	)

	RouteRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_refreshes_total",
			Help:      "Route cache refreshes by status",
		},
		[]string{"status"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routing_provider_requests_total",
			Help:      "Requests sent to routing providers",
		},
		[]string{"provider", "mode", "status"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "routing_provider_request_duration_seconds",
			Help:      "Routing provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"provider", "mode"},
	)

	RateLimitWaitTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "routing_rate_limit_wait_seconds",
			Help:      "Time spent waiting for the provider rate limiter",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"provider"},
	)

	WorkerMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_messages_total",
			Help:      "Stream messages handled by workers",
		},
		[]string{"worker", "status"},
	)
)

// ObserveProvider records one routing provider call.
func ObserveProvider(provider, mode, status string, started time.Time) {
	ProviderRequestsTotal.WithLabelValues(provider, mode, status).Inc()
	ProviderRequestDuration.WithLabelValues(provider, mode).Observe(time.Since(started).Seconds())
}
