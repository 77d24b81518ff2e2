package observability

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metrics owns the request metric families and the registry they live on.
// One instance is built at startup and threaded into the middleware and the
// scrape handler; nothing registers on the global default registry.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	logger         *slog.Logger
}

func NewMetrics(appName, appVersion string, logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		logger:   logger,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests.",
			},
			[]string{"route", "method", "code"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_latency_seconds",
				Help:    "Request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "secureapi_build_info",
			Help: "Build information for the running binary.",
		},
		[]string{"app", "version"},
	)
	buildInfo.WithLabelValues(appName, appVersion).Set(1)

	registry.MustRegister(
		m.requestsTotal,
		m.requestLatency,
		buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest adds one counter increment and one latency observation for a
// completed request. Metric failures are logged and swallowed so a metrics
// fault never fails the request that triggered it.
func (m *Metrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	counter, err := m.requestsTotal.GetMetricWithLabelValues(route, method, strconv.Itoa(status))
	if err != nil {
		m.logMetricError("http_requests_total", err)
	} else {
		counter.Inc()
	}

	observer, err := m.requestLatency.GetMetricWithLabelValues(route, method)
	if err != nil {
		m.logMetricError("http_request_latency_seconds", err)
	} else {
		observer.Observe(elapsed.Seconds())
	}
}

// Handler renders the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

func (m *Metrics) logMetricError(name string, err error) {
	if m.logger == nil {
		return
	}
	m.logger.Warn("failed to record metric",
		slog.String("metric", name),
		slog.Any("error", err),
	)
}
