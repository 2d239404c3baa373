package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	uploads       *prometheus.CounterVec
	adminChecks   *prometheus.CounterVec
	sessionEvents *prometheus.CounterVec
	blobDeletes   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "basamu_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "basamu_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "basamu_uploads_total",
			Help: "Blob store uploads by bucket and outcome.",
		}, []string{"bucket", "outcome"}),
		adminChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "basamu_admin_checks_total",
			Help: "Authorization gate decisions by outcome.",
		}, []string{"outcome"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "basamu_session_events_total",
			Help: "Session changes by type.",
		}, []string{"type"}),
		blobDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "basamu_blob_deletes_total",
			Help: "Blob deletions by bucket and outcome.",
		}, []string{"bucket", "outcome"}),
	}
	m.registry.MustRegister(
		m.requests, m.latency, m.uploads, m.adminChecks, m.sessionEvents, m.blobDeletes,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records every request under its route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ObserveUpload(bucket, outcome string) {
	m.uploads.WithLabelValues(bucket, outcome).Inc()
}

func (m *Metrics) ObserveAdminCheck(outcome string) {
	m.adminChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSessionEvent(kind string) {
	m.sessionEvents.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveBlobDelete(bucket, outcome string) {
	m.blobDeletes.WithLabelValues(bucket, outcome).Inc()
}
