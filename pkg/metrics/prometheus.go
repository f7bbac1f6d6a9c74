// Package metrics provides Prometheus metrics for the podium profile service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second

	metricsNamespace = "podium"
	metricsSubsystem = "profile"
)

// Manager owns every collector exported by the service.
type Manager struct {
	enabled         bool
	refreshInterval time.Duration
	customLabels    map[string]string
	registry        prometheus.Registerer

	// Profile rendering
	profileRenders       *prometheus.CounterVec
	profileRenderLatency prometheus.Histogram
	wordCloudLatency     prometheus.Histogram
	wordCloudErrors      prometheus.Counter

	// Dataset
	datasetRows      prometheus.Gauge
	datasetCountries prometheus.Gauge
	datasetSkipped   prometheus.Gauge
	datasetLoadTime  prometheus.Gauge

	// Sessions and cross-page signals
	signals       *prometheus.CounterVec
	sessionErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init rebuilds the global collectors on a fresh registry with opts.
// Call it once at startup, before any handler reads GetRegistry.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		customLabels:    make(map[string]string),
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.profileRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   metricsSubsystem,
		Name:        "renders_total",
		Help:        "Profile renders by resulting view state",
		ConstLabels: constLabels,
	}, []string{"state"})

	m.profileRenderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metricsNamespace,
		Subsystem:   metricsSubsystem,
		Name:        "render_latency_milliseconds",
		Help:        "Time spent computing a profile view",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	})

	m.wordCloudLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metricsNamespace,
		Subsystem:   metricsSubsystem,
		Name:        "wordcloud_latency_milliseconds",
		Help:        "Time spent rasterising a sports word cloud",
		Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		ConstLabels: constLabels,
	})

	m.wordCloudErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   metricsSubsystem,
		Name:        "wordcloud_errors_total",
		Help:        "Word cloud renders that failed",
		ConstLabels: constLabels,
	})

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "dataset",
		Name:        "rows",
		Help:        "Event records loaded into the shared dataset",
		ConstLabels: constLabels,
	})

	m.datasetCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "dataset",
		Name:        "countries",
		Help:        "Distinct NOC codes present in the dataset",
		ConstLabels: constLabels,
	})

	m.datasetSkipped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "dataset",
		Name:        "skipped_rows",
		Help:        "Input rows rejected by the loader",
		ConstLabels: constLabels,
	})

	m.datasetLoadTime = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "dataset",
		Name:        "load_duration_milliseconds",
		Help:        "Duration of the last dataset load",
		ConstLabels: constLabels,
	})

	m.signals = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "session",
		Name:        "signals_total",
		Help:        "Cross-page country signals by outcome (accepted, ignored)",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	m.sessionErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "session",
		Name:        "store_errors_total",
		Help:        "Session store failures by operation",
		ConstLabels: constLabels,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "http",
			Name:        "request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "http",
		Name:        "rate_limited_total",
		Help:        "Requests rejected by the per-client limiter",
		ConstLabels: constLabels,
	}, []string{"endpoint"})

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "http",
			Name:        "errors_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "system",
		Name:        "gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// RecordProfileRender counts one render that ended in state.
func RecordProfileRender(state string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.profileRenders.WithLabelValues(state).Inc()
	globalManager.profileRenderLatency.Observe(latencyMs)
}

// RecordWordCloud records a word cloud render; failed renders are counted separately.
func RecordWordCloud(latencyMs float64, failed bool) {
	if !globalManager.enabled {
		return
	}
	if failed {
		globalManager.wordCloudErrors.Inc()
		return
	}
	globalManager.wordCloudLatency.Observe(latencyMs)
}

// UpdateDataset publishes the shape of the loaded dataset.
func UpdateDataset(rows, countries, skipped int, loadMs float64) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetCountries.Set(float64(countries))
	globalManager.datasetSkipped.Set(float64(skipped))
	globalManager.datasetLoadTime.Set(loadMs)
}

// RecordSignal counts a cross-page country signal ("accepted" or "ignored").
func RecordSignal(outcome string) {
	globalManager.signals.WithLabelValues(outcome).Inc()
}

// RecordSessionError counts a failing session store operation.
func RecordSessionError(op string) {
	globalManager.sessionErrors.WithLabelValues(op).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected with 429.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval is how often periodic gauges should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}
