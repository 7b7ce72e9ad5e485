package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the reconciliation pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	reconcileDuration *prometheus.HistogramVec
	fetchTotal        *prometheus.CounterVec
	coalescedTotal    prometheus.Counter
	staleDiscards     prometheus.Counter
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	reconcileDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_reconcile_duration_seconds",
		Help:    "Time spent assembling one timetable view",
		Buckets: prometheus.DefBuckets,
	}, []string{"granularity"})

	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_fetches_total",
		Help: "Timetable view fetches started, by granularity",
	}, []string{"granularity"})

	coalescedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_fetches_coalesced_total",
		Help: "View requests served by an already in-flight fetch",
	})

	staleDiscards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_stale_results_total",
		Help: "Fetch results discarded because a newer request superseded them",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "view_cache_hits_total",
		Help: "Timetable view cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "view_cache_misses_total",
		Help: "Timetable view cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, reconcileDuration, fetchTotal, coalescedTotal, staleDiscards, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		reconcileDuration: reconcileDuration,
		fetchTotal:        fetchTotal,
		coalescedTotal:    coalescedTotal,
		staleDiscards:     staleDiscards,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveReconcile records the time one view assembly took.
func (m *MetricsService) ObserveReconcile(granularity string, duration time.Duration) {
	if m == nil {
		return
	}
	m.reconcileDuration.WithLabelValues(granularity).Observe(duration.Seconds())
}

// RecordFetchStarted counts a view fetch actually hitting the pipeline.
func (m *MetricsService) RecordFetchStarted(granularity string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(granularity).Inc()
}

// RecordCoalesced counts a request that piggybacked on an in-flight fetch.
func (m *MetricsService) RecordCoalesced() {
	if m == nil {
		return
	}
	m.coalescedTotal.Inc()
}

// RecordStaleDiscard counts a fetch result that arrived too late to apply.
func (m *MetricsService) RecordStaleDiscard() {
	if m == nil {
		return
	}
	m.staleDiscards.Inc()
}

// RecordViewCache counts a view cache lookup.
func (m *MetricsService) RecordViewCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
