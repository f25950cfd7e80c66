package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathsteps",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mathsteps",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathsteps",
			Name:      "pipeline_outcomes_total",
			Help:      "Pipeline results by endpoint and code.",
		}, []string{"endpoint", "code"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.outcomes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOutcome counts one pipeline result. code is "OK" on success.
func (m *Metrics) ObserveOutcome(endpoint, code string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(endpoint, code).Inc()
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			route := routeLabel(r.URL.Path)
			m.requests.WithLabelValues(route, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
			m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

// routeLabel keeps label cardinality bounded to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/simplify", "/solve", "/health", "/schema", "/metrics":
		return path
	}
	return "other"
}
