package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts what the fail-open content client would otherwise hide.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FetchFailures *prometheus.CounterVec
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_fetch_failures_total",
			Help: "Content API calls that degraded to an empty result, by operation and failure kind.",
		}, []string{"op", "kind"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_hits_total",
			Help: "Content API responses served from the revalidation window.",
		}, []string{"op"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_misses_total",
			Help: "Content API responses fetched from the network.",
		}, []string{"op"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.FetchFailures,
		m.CacheHits,
		m.CacheMisses,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordFetchFailure(op, kind string) {
	if m == nil {
		return
	}
	m.FetchFailures.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) RecordCacheHit(op string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(op).Inc()
}

func (m *Metrics) RecordCacheMiss(op string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(op).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
