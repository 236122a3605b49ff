package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rivulet").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "rivulet",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the page server.
type metrics struct {
	pagesTotal      *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	bytesStreamed   *prometheus.CounterVec
	flushesTotal    *prometheus.CounterVec
	inflightRenders prometheus.Gauge
}

// globalMetrics is the singleton metrics instance.
// Created on the first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		pagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pages_total",
			Help:        "Total number of page requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Page render and stream duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		bytesStreamed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bytes_streamed_total",
			Help:        "Total response bytes streamed to clients",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		flushesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total section flushes pushed to clients",
			ConstLabels: config.ConstLabels,
		}, []string{"path"}),

		inflightRenders: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "inflight_renders",
			Help:        "Number of page renders currently in progress",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// every page request.
//
// Metrics collected:
//   - rivulet_pages_total: Counter of requests by path and status
//   - rivulet_render_duration_seconds: Histogram of request duration
//   - rivulet_bytes_streamed_total: Counter of response bytes by path
//   - rivulet_flushes_total: Counter of section flushes by path
//   - rivulet_inflight_renders: Gauge of in-progress renders
//
// Example:
//
//	app.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			m.inflightRenders.Inc()
			defer m.inflightRenders.Dec()

			cw := &countingResponseWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			m.renderDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.pagesTotal.WithLabelValues(path, strconv.Itoa(cw.status)).Inc()
			m.bytesStreamed.WithLabelValues(path).Add(float64(cw.bytes))
			m.flushesTotal.WithLabelValues(path).Add(float64(cw.flushes))
		})
	}
}

// countingResponseWriter tracks status, bytes, and flushes.
type countingResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int64
	flushes int64
}

func (c *countingResponseWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *countingResponseWriter) Write(p []byte) (int, error) {
	n, err := c.ResponseWriter.Write(p)
	c.bytes += int64(n)
	return n, err
}

// Flush implements http.Flusher when the underlying writer does.
func (c *countingResponseWriter) Flush() {
	c.flushes++
	if f, ok := c.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
