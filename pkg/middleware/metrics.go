package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "editkit").
	Namespace string

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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "editkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for EditKit.
type metrics struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	declinedNodes      prometheus.Counter
	patchesEmitted     prometheus.Counter
	activeSessions     prometheus.Gauge
}

// globalMetrics is the singleton metrics instance, created on first use
// of Metrics().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"path", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"path"}),

		conversionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "conversions_total",
			Help:      "Total number of conversion passes by direction",
		}, []string{"direction"}),

		conversionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Conversion pass duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"direction"}),

		declinedNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "declined_nodes_total",
			Help:      "Total number of view nodes no handler converted",
		}),

		patchesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "patches_emitted_total",
			Help:      "Total number of view patches emitted by downcast passes",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "active_sessions",
			Help:      "Number of active live conversion sessions",
		}),
	}
}

// Metrics creates middleware that collects Prometheus metrics for HTTP
// requests.
//
// Metrics collected:
//   - editkit_requests_total: Counter of requests by path and status
//   - editkit_request_duration_seconds: Histogram of request duration
//
// Expose them via promhttp.Handler() on /metrics.
func Metrics(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

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

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			m.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		})
	}
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack forwards to the underlying ResponseWriter so wrapped handlers
// can still upgrade connections (e.g. websockets).
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response does not implement http.Hijacker")
	}
	return h.Hijack()
}

// RecordConversion records one conversion pass.
func RecordConversion(direction string, declined int, duration time.Duration) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.conversionsTotal.WithLabelValues(direction).Inc()
	globalMetrics.conversionDuration.WithLabelValues(direction).Observe(duration.Seconds())
	globalMetrics.declinedNodes.Add(float64(declined))
}

// RecordPatches records the number of patches emitted by a downcast pass.
func RecordPatches(count int) {
	if globalMetrics != nil {
		globalMetrics.patchesEmitted.Add(float64(count))
	}
}

// RecordSessionOpen records a live session being opened.
func RecordSessionOpen() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Inc()
	}
}

// RecordSessionClose records a live session being closed.
func RecordSessionClose() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Dec()
	}
}
