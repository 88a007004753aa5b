// Package metrics exposes Prometheus collectors for the poller, the request
// workflows and the HTTP surface. A nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cnap"

type Metrics struct {
	reg *prometheus.Registry

	emails    *prometheus.CounterVec
	accounts  *prometheus.CounterVec
	pipelines *prometheus.CounterVec
	pollRuns  *prometheus.CounterVec
	pollTime  prometheus.Histogram

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_processed_total",
			Help:      "Inbound emails handled, by request kind and result.",
		}, []string{"kind", "result"}),
		accounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_requests_total",
			Help:      "Account request decisions, by outcome.",
		}, []string{"outcome"}),
		pipelines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_requests_total",
			Help:      "Pipeline request decisions, by outcome.",
		}, []string{"outcome"}),
		pollRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_runs_total",
			Help:      "Mailbox poll runs, by result.",
		}, []string{"result"}),
		pollTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a mailbox poll run.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.emails, m.accounts, m.pipelines, m.pollRuns, m.pollTime,
		m.httpInFlight, m.httpRequests, m.httpLatency,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) EmailProcessed(kind, result string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) AccountOutcome(outcome string) {
	if m == nil {
		return
	}
	m.accounts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PipelineOutcome(outcome string) {
	if m == nil {
		return
	}
	m.pipelines.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PollRun(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.pollRuns.WithLabelValues(result).Inc()
	m.pollTime.Observe(d.Seconds())
}

// Instrument records count, latency and in-flight requests. The route label
// is the matched ServeMux pattern so path parameters do not explode it.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(sw.code)
		m.httpLatency.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(r.Method, route, status).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
