package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the server
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	reorderBatches   *prometheus.CounterVec
	reorderBatchSize *prometheus.HistogramVec
}

// New creates and registers all collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		reorderBatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paratus_reorder_batches_total",
				Help: "Reorder batches processed, by entity family and result",
			},
			[]string{"family", "result"},
		),
		reorderBatchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paratus_reorder_batch_size",
				Help:    "Number of entities named in a reorder batch",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"family"},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.reorderBatches, m.reorderBatchSize)
	return m
}

// Middleware records request counts and latencies
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			m.requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			m.requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveReorder counts a reorder batch. Safe on a nil receiver.
func (m *Metrics) ObserveReorder(family string, size int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reorderBatches.WithLabelValues(family, result).Inc()
	m.reorderBatchSize.WithLabelValues(family).Observe(float64(size))
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
