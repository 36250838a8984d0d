// Package metrics provides Prometheus metrics for the attribute engine
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the attribute engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core business metrics
	jobsProcessed     prometheus.Counter
	jobsDuplicate     prometheus.Counter
	jobsRejected      prometheus.Counter
	elementsScored    prometheus.Counter
	attributesUpdated prometheus.Counter
	capabilityClamped prometheus.Counter
	scoresByFamily    *prometheus.CounterVec
	engineLatency     prometheus.Histogram

	// Queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueErrors      prometheus.Counter

	// Worker metrics
	workerCount   prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// Profile store metrics
	storeUsers      prometheus.Gauge
	storeAttributes prometheus.Gauge
	storeShards     prometheus.Gauge
	storeLatency    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careerhq",
		subsystem:        "attribute_engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
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

	m.jobsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_processed_total",
		Help:      "Total number of job experiences applied to profiles",
	})

	m.jobsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_duplicate_total",
		Help:      "Total number of duplicate job experiences skipped",
	})

	m.jobsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_rejected_total",
		Help:      "Total number of job experiences rejected as invalid input",
	})

	m.elementsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "elements_scored_total",
		Help:      "Total number of occupation elements scored",
	})

	m.attributesUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "attributes_updated_total",
		Help:      "Total number of user attributes updated",
	})

	m.capabilityClamped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capability_clamped_total",
		Help:      "Total number of updates where capability hit the 100 ceiling",
	})

	m.scoresByFamily = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scores_by_family_total",
			Help:      "Total number of experience scores computed per formula family",
		},
		[]string{"family"},
	)

	m.engineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engine_latency_milliseconds",
		Help:      "Latency of attribute delta computation in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued job experiences",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum queue capacity",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Queue utilization ratio (current size / capacity)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of job experiences enqueued",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of job experiences dequeued",
	})

	m.queueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_errors_total",
		Help:      "Total number of enqueue failures",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of profile update workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_latency_milliseconds",
		Help:      "Worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker errors",
	})

	m.storeUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_users",
		Help:      "Number of user profiles tracked in the store",
	})

	m.storeAttributes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_attributes",
		Help:      "Total number of accumulated attributes across all profiles",
	})

	m.storeShards = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_shards",
		Help:      "Number of profile store shards",
	})

	m.storeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_latency_milliseconds",
		Help:      "Profile store update latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordJobProcessed increments the processed jobs counter.
func RecordJobProcessed() {
	globalManager.jobsProcessed.Inc()
}

// RecordJobDuplicate increments the duplicate jobs counter.
func RecordJobDuplicate() {
	globalManager.jobsDuplicate.Inc()
}

// RecordJobRejected increments the rejected jobs counter.
func RecordJobRejected() {
	globalManager.jobsRejected.Inc()
}

// RecordElementsScored adds to the scored elements counter.
func RecordElementsScored(n int) {
	globalManager.elementsScored.Add(float64(n))
}

// RecordAttributesUpdated adds to the updated attributes counter.
func RecordAttributesUpdated(n int) {
	globalManager.attributesUpdated.Add(float64(n))
}

// RecordCapabilityClamped increments the clamp-hit counter.
func RecordCapabilityClamped() {
	globalManager.capabilityClamped.Inc()
}

// RecordScoreByFamily increments the per-family score counter.
func RecordScoreByFamily(family string) {
	globalManager.scoresByFamily.WithLabelValues(family).Inc()
}

// RecordEngineLatency records attribute delta computation latency.
func RecordEngineLatency(latencyMs float64) {
	globalManager.engineLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueError increments the enqueue failure counter.
func RecordQueueError() {
	globalManager.queueErrors.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerLatency records worker processing latency in milliseconds.
func RecordWorkerLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateStoreUsers sets the number of tracked user profiles.
func UpdateStoreUsers(count int) {
	globalManager.storeUsers.Set(float64(count))
}

// UpdateStoreAttributes sets the total number of accumulated attributes.
func UpdateStoreAttributes(count int) {
	globalManager.storeAttributes.Set(float64(count))
}

// UpdateStoreShards sets the number of profile store shards.
func UpdateStoreShards(count int) {
	globalManager.storeShards.Set(float64(count))
}

// RecordStoreLatency records profile store update latency in milliseconds.
func RecordStoreLatency(latencyMs float64) {
	globalManager.storeLatency.Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
