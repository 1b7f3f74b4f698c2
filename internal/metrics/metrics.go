// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vibewalk"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPC calls handled.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPC calls.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
		},
		[]string{"procedure"},
	)

	imageLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "places",
			Name:      "image_lookups_total",
			Help:      "Photo lookups by outcome (cached, found, placeholder).",
		},
		[]string{"outcome"},
	)

	routeGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "itinerary",
			Name:      "generations_total",
			Help:      "Route generations and place searches by result.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	Registry.MustRegister(
		rpcRequests,
		rpcDuration,
		imageLookups,
		routeGenerations,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRPC records one finished RPC call. code is "ok" for successes.
func RecordRPC(procedure, code string, duration time.Duration) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// RecordImageLookup records the outcome of one photo lookup.
func RecordImageLookup(outcome string) {
	imageLookups.WithLabelValues(outcome).Inc()
}

// RecordGeneration records a completion-backed call. kind is "route" or
// "search".
func RecordGeneration(kind string, ok bool) {
	result := "failed"
	if ok {
		result = "ok"
	}
	routeGenerations.WithLabelValues(kind, result).Inc()
}
