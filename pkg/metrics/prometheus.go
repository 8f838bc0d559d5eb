// Package metrics provides Prometheus metrics for the SIH analytics dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	rowBuckets     []float64
	registry       prometheus.Registerer

	// Dataset metrics
	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	datasetRows         prometheus.Gauge
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter

	// Filter metrics
	filterDuration    prometheus.Histogram
	filterRowsOut     prometheus.Histogram
	filterReconciled  *prometheus.CounterVec
	sessionsActive    prometheus.Gauge
	sessionsEvicted   prometheus.Counter
	exports           *prometheus.CounterVec
	chartRenderErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// Default buckets: latencies in milliseconds, row counts up to a full snapshot.
var (
	defaultLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals // fixed buckets
	defaultRowBuckets     = []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000}        //nolint:gochecknoglobals // fixed buckets
)

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "sih",
		subsystem:      "dashboard",
		latencyBuckets: defaultLatencyBuckets,
		rowBuckets:     defaultRowBuckets,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Dataset load attempts by result (ok, load_error, schema_error)"),
		[]string{"result"},
	)
	m.datasetLoadDuration = auto.NewHistogram(
		m.histogramOpts("dataset_load_duration_milliseconds", "Time spent parsing the dataset snapshot", m.latencyBuckets),
	)
	m.datasetRows = auto.NewGauge(m.gaugeOpts("dataset_rows", "Rows in the currently cached dataset"))
	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Dataset cache hits"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Dataset cache misses"))

	m.filterDuration = auto.NewHistogram(
		m.histogramOpts("filter_pipeline_duration_milliseconds", "Time spent applying a filter state", m.latencyBuckets),
	)
	m.filterRowsOut = auto.NewHistogram(
		m.histogramOpts("filter_rows_out", "Rows left after applying a filter state", m.rowBuckets),
	)
	m.filterReconciled = auto.NewCounterVec(
		m.counterOpts("filter_reconciled_values_total", "Stale selections dropped during reconciliation"),
		[]string{"key"},
	)
	m.sessionsActive = auto.NewGauge(m.gaugeOpts("sessions_active", "Sessions currently held in memory"))
	m.sessionsEvicted = auto.NewCounter(m.counterOpts("sessions_evicted_total", "Sessions evicted by the LRU bound"))
	m.exports = auto.NewCounterVec(
		m.counterOpts("exports_total", "CSV exports served by kind"),
		[]string{"kind"},
	)
	m.chartRenderErrors = auto.NewCounter(m.counterOpts("chart_render_errors_total", "Charts that failed to render"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
}

// Dataset Metrics Functions.

// RecordDatasetLoad counts a load attempt with its result label.
func RecordDatasetLoad(result string) {
	globalManager.datasetLoads.WithLabelValues(result).Inc()
}

// RecordDatasetLoadDuration records how long a load took.
func RecordDatasetLoadDuration(durationMs float64) {
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// UpdateDatasetRows sets the row count of the cached dataset.
func UpdateDatasetRows(rows int) {
	globalManager.datasetRows.Set(float64(rows))
}

// RecordCacheHit increments the dataset cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the dataset cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// Filter and Session Metrics Functions.

// RecordFilterDuration records a filter pipeline run.
func RecordFilterDuration(durationMs float64) {
	globalManager.filterDuration.Observe(durationMs)
}

// RecordFilterRowsOut records the size of a filtered view.
func RecordFilterRowsOut(rows int) {
	globalManager.filterRowsOut.Observe(float64(rows))
}

// RecordReconciledValues counts stale selections dropped for key.
func RecordReconciledValues(key string, n int) {
	if n <= 0 {
		return
	}
	globalManager.filterReconciled.WithLabelValues(key).Add(float64(n))
}

// UpdateSessionsActive sets the number of live sessions.
func UpdateSessionsActive(n int) {
	globalManager.sessionsActive.Set(float64(n))
}

// RecordSessionEvicted increments the eviction counter.
func RecordSessionEvicted() {
	globalManager.sessionsEvicted.Inc()
}

// RecordExport counts a CSV export of kind.
func RecordExport(kind string) {
	globalManager.exports.WithLabelValues(kind).Inc()
}

// RecordChartRenderError counts a failed chart render.
func RecordChartRenderError() {
	globalManager.chartRenderErrors.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the heap memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
