// Package metrics provides Prometheus metrics for the raceboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the raceboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	registry         prometheus.Registerer

	// Submission flow
	submissionsAccepted prometheus.Counter
	submissionsRejected *prometheus.CounterVec
	submissionScore     prometheus.Histogram

	// Ledger health
	ledgerAppendLatency prometheus.Histogram
	ledgerReadLatency   prometheus.Histogram
	ledgerRecords       prometheus.Gauge
	lockWaitLatency     prometheus.Histogram
	lockTimeouts        prometheus.Counter

	// Leaderboard reads
	leaderboardBuilds       prometheus.Counter
	leaderboardBuildLatency prometheus.Histogram

	// Admin surface
	adminResets       prometheus.Counter
	adminResetsDenied prometheus.Counter

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByEndpoint *prometheus.CounterVec
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
		namespace:        "raceboard",
		subsystem:        "submissions",
		histogramBuckets: prometheus.DefBuckets,
		scoreBuckets:     prometheus.LinearBuckets(0, 5, 12),
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

	m.submissionsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "accepted_total",
		Help:      "Total number of submissions durably appended to the ledger",
	})

	m.submissionsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rejected_total",
			Help:      "Total number of submissions rejected before reaching the ledger",
		},
		[]string{"reason"},
	)

	m.submissionScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Distribution of total scores across accepted submissions",
		Buckets:   m.scoreBuckets,
	})

	m.ledgerAppendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "append_duration_seconds",
		Help:      "Time spent appending a record, lock wait included",
		Buckets:   m.histogramBuckets,
	})

	m.ledgerReadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "read_duration_seconds",
		Help:      "Time spent reading the full submission history",
		Buckets:   m.histogramBuckets,
	})

	m.ledgerRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "records",
		Help:      "Number of records in the submission store at last read",
	})

	m.lockWaitLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "lock_wait_seconds",
		Help:      "Time spent waiting for the cross-process store lock",
		Buckets:   m.histogramBuckets,
	})

	m.lockTimeouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ledger",
		Name:      "lock_timeouts_total",
		Help:      "Total number of writes abandoned because the store lock timed out",
	})

	m.leaderboardBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "builds_total",
		Help:      "Total number of leaderboard materializations",
	})

	m.leaderboardBuildLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "build_duration_seconds",
		Help:      "Time spent deriving a ranked round view from the history",
		Buckets:   m.histogramBuckets,
	})

	m.adminResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "admin",
		Name:      "resets_total",
		Help:      "Total number of successful whole-ledger resets",
	})

	m.adminResetsDenied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "admin",
		Name:      "resets_denied_total",
		Help:      "Total number of reset attempts rejected for a bad admin code",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by endpoint and method",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Total number of error responses by endpoint and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// Package-level record helpers operating on the global manager.

// RecordSubmissionAccepted counts a durably appended submission and its score.
func RecordSubmissionAccepted(score int) {
	globalManager.submissionsAccepted.Inc()
	globalManager.submissionScore.Observe(float64(score))
}

// RecordSubmissionRejected counts a submission rejected for the given reason.
func RecordSubmissionRejected(reason string) {
	globalManager.submissionsRejected.WithLabelValues(reason).Inc()
}

// RecordLedgerAppend observes one append cycle duration in seconds.
func RecordLedgerAppend(seconds float64) {
	globalManager.ledgerAppendLatency.Observe(seconds)
}

// RecordLedgerRead observes one full-history read duration in seconds.
func RecordLedgerRead(seconds float64) {
	globalManager.ledgerReadLatency.Observe(seconds)
}

// UpdateLedgerRecords sets the record count observed by the last read.
func UpdateLedgerRecords(count int) {
	globalManager.ledgerRecords.Set(float64(count))
}

// RecordLockWait observes time spent waiting for the store lock.
func RecordLockWait(seconds float64) {
	globalManager.lockWaitLatency.Observe(seconds)
}

// RecordLockTimeout counts a write abandoned on lock timeout.
func RecordLockTimeout() {
	globalManager.lockTimeouts.Inc()
}

// RecordLeaderboardBuild observes one leaderboard materialization.
func RecordLeaderboardBuild(seconds float64) {
	globalManager.leaderboardBuilds.Inc()
	globalManager.leaderboardBuildLatency.Observe(seconds)
}

// RecordAdminReset counts a successful whole-ledger reset.
func RecordAdminReset() {
	globalManager.adminResets.Inc()
}

// RecordAdminResetDenied counts a reset attempt with a bad admin code.
func RecordAdminResetDenied() {
	globalManager.adminResetsDenied.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordErrorByEndpoint counts one error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
