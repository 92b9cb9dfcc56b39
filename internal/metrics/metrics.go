// Package metrics exposes Prometheus collectors for outbound backend calls.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the wallet layer's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "wallet_layer",
			Subsystem: "api",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight backend requests.",
		},
		[]string{"domain"},
	)

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_layer",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend requests issued.",
		},
		[]string{"domain", "method", "path", "status"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wallet_layer",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"domain", "method"},
	)

	sessionDeletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_layer",
			Subsystem: "auth",
			Name:      "session_deletions_total",
			Help:      "Sessions dropped after an unauthorized response.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		apiInFlight,
		apiRequests,
		apiDuration,
		sessionDeletions,
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge for domain and returns the
// matching decrement.
func TrackInFlight(domain string) func() {
	g := apiInFlight.WithLabelValues(domain)
	g.Inc()
	return g.Dec
}

// RecordRequest records one backend round trip. status 0 means the call
// never produced a response.
func RecordRequest(domain, method, path string, status int, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	method = strings.ToUpper(method)
	apiRequests.WithLabelValues(domain, method, CanonicalPath(path), label).Inc()
	apiDuration.WithLabelValues(domain, method).Observe(duration.Seconds())
}

// RecordSessionDeletion counts a session teardown triggered by a 401.
func RecordSessionDeletion(success bool) {
	result := "ok"
	if !success {
		result = "failed"
	}
	sessionDeletions.WithLabelValues(result).Inc()
}

// CanonicalPath strips query strings and replaces numeric segments with :id
// so label cardinality stays bounded.
func CanonicalPath(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
