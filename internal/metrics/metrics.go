// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "retailsheet"

// Metrics groups every collector on a private registry. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RecordsWritten      *prometheus.CounterVec
	RecordsRead         *prometheus.CounterVec
	PipelineErrors      *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
}

// New creates and registers the collectors, together with the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		RecordsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_written_total",
				Help:      "Records inserted into the table store",
			},
			[]string{"kind"},
		),
		RecordsRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_read_total",
				Help:      "Records fetched from the table store",
			},
			[]string{"kind"},
		),
		PipelineErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_errors_total",
				Help:      "Failed dataset operations",
			},
			[]string{"kind", "operation"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of dataset operations",
				Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"kind", "operation"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RecordsWritten,
		m.RecordsRead,
		m.PipelineErrors,
		m.OperationDuration,
	)
	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts and times every request by its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

// ObserveOperation records how long a dataset operation took and whether it failed.
func (m *Metrics) ObserveOperation(kind, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(kind, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.PipelineErrors.WithLabelValues(kind, operation).Inc()
	}
}

// AddWritten counts inserted records.
func (m *Metrics) AddWritten(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsWritten.WithLabelValues(kind).Add(float64(n))
}

// AddRead counts fetched records.
func (m *Metrics) AddRead(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsRead.WithLabelValues(kind).Add(float64(n))
}
