// Package metrics provides Prometheus metrics for the polar report pipeline.
//
// A report run is a short-lived batch job, so metrics are not scraped over
// HTTP. They are collected on a private registry and written once at the end
// of a run in the node-exporter textfile format (see WriteTextfile).
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "polar"
	defaultSubsystem = "report"
)

// Default latency buckets in milliseconds for per-file work.
var defaultLatencyBuckets = []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // immutable defaults

// Manager manages all Prometheus metrics of a report run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Input metrics
	filesDiscovered prometheus.Gauge
	filesParsed     prometheus.Counter
	filesSkipped    *prometheus.CounterVec
	identityIssues  *prometheus.CounterVec
	samplesParsed   prometheus.Counter

	// Stage latency
	parseLatency  prometheus.Histogram
	renderLatency prometheus.Histogram

	// Output metrics
	pagesAppended  *prometheus.CounterVec
	reportBytes    prometheus.Gauge
	runDuration    prometheus.Gauge
	lastSuccessRun prometheus.Gauge
	runFailures    *prometheus.CounterVec
	workerCount    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesDiscovered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_discovered",
		Help:      "Number of polar files found in the input directory",
	})

	m.filesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_parsed_total",
		Help:      "Total number of polar files parsed and included in the report",
	})

	m.filesSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "files_skipped_total",
			Help:      "Total number of polar files excluded from the report by stage",
		},
		[]string{"stage"},
	)

	m.identityIssues = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "identity_issues_total",
			Help:      "Total number of soft identity issues (sentinel name or unknown Reynolds)",
		},
		[]string{"issue"},
	)

	m.samplesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_parsed_total",
		Help:      "Total number of sample rows parsed",
	})

	m.parseLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_latency_milliseconds",
		Help:      "Histogram of per-file parse and extraction latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.renderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_latency_milliseconds",
		Help:      "Histogram of per-page render latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pagesAppended = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "pages_appended_total",
			Help:      "Total number of pages appended to the report by kind",
		},
		[]string{"kind"},
	)

	m.reportBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_bytes",
		Help:      "Size of the last written report in bytes",
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run in seconds",
	})

	m.lastSuccessRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	})

	m.runFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "run_failures_total",
			Help:      "Total number of failed runs by reason",
		},
		[]string{"reason"},
	)

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of parse workers used by the last run",
	})
}

// UpdateFilesDiscovered sets the number of discovered input files.
func UpdateFilesDiscovered(count int) {
	globalManager.filesDiscovered.Set(float64(count))
}

// RecordFileParsed increments the parsed files counter and adds its samples.
func RecordFileParsed(samples int) {
	globalManager.filesParsed.Inc()
	globalManager.samplesParsed.Add(float64(samples))
}

// RecordFileSkipped increments the skipped files counter for a stage
// ("parse" or "efficiency").
func RecordFileSkipped(stage string) {
	globalManager.filesSkipped.WithLabelValues(stage).Inc()
}

// RecordIdentityIssue counts a soft identity issue.
func RecordIdentityIssue(issue string) {
	globalManager.identityIssues.WithLabelValues(issue).Inc()
}

// RecordParseLatency records per-file parse latency in milliseconds.
func RecordParseLatency(latencyMs float64) {
	globalManager.parseLatency.Observe(latencyMs)
}

// RecordRenderLatency records per-page render latency in milliseconds.
func RecordRenderLatency(latencyMs float64) {
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordPageAppended counts one appended page of the given kind.
func RecordPageAppended(kind string) {
	globalManager.pagesAppended.WithLabelValues(kind).Inc()
}

// UpdateReportBytes sets the size of the written report.
func UpdateReportBytes(size int64) {
	globalManager.reportBytes.Set(float64(size))
}

// RecordRunSuccess records the duration and completion time of a successful run.
func RecordRunSuccess(duration time.Duration, at time.Time) {
	globalManager.runDuration.Set(duration.Seconds())
	globalManager.lastSuccessRun.Set(float64(at.Unix()))
}

// RecordRunFailure records the duration of a failed run and its reason.
func RecordRunFailure(duration time.Duration, reason string) {
	globalManager.runDuration.Set(duration.Seconds())
	globalManager.runFailures.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of parse workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// GetRegistry returns the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global metrics to path in the textfile collector
// format. The file is written to a temporary name and renamed into place.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
