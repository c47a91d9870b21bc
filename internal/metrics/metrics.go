// Package metrics holds the Prometheus instruments for the analyzer. Each
// Metrics owns its registry so tests and multiple servers do not collide.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockanalyzer"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP surface
	RequestsTotal   *prometheus.CounterVec   // labels: route, code
	RequestDuration *prometheus.HistogramVec // labels: route

	// Upstream market data
	UpstreamRequests *prometheus.CounterVec // labels: source, op, outcome
	UpstreamDuration *prometheus.HistogramVec

	// Computation outcomes
	ForecastsTotal *prometheus.CounterVec // labels: outcome=ok|insufficient|unavailable
	SignalsTotal   *prometheus.CounterVec // labels: label
	AnalysisDur    prometheus.Histogram

	// Watchlist job
	WatchlistRuns prometheus.Counter
}

// New registers and returns all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Market data requests by source, operation and outcome",
		}, []string{"source", "op", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Market data request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source", "op"}),
		ForecastsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_total",
			Help:      "Forecast attempts by outcome",
		}, []string{"outcome"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Signals emitted by label",
		}, []string{"label"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Full stock analysis latency including upstream fetches",
			Buckets:   prometheus.DefBuckets,
		}),
		WatchlistRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchlist_runs_total",
			Help:      "Completed watchlist scans",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ForecastsTotal,
		m.SignalsTotal,
		m.AnalysisDur,
		m.WatchlistRuns,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) ObserveRequest(route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, code).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) ObserveUpstream(source, op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(source, op, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source, op).Observe(d.Seconds())
}

func (m *Metrics) ForecastOutcome(outcome string) {
	if m == nil {
		return
	}
	m.ForecastsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Signal(label string) {
	if m == nil {
		return
	}
	m.SignalsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveAnalysis(d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisDur.Observe(d.Seconds())
}

func (m *Metrics) WatchlistRun() {
	if m == nil {
		return
	}
	m.WatchlistRuns.Inc()
}
