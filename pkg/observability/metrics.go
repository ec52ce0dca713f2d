package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	RoomsCreated      prometheus.Counter
	RoomsDeleted      prometheus.Counter
	MemoriesCreated   prometheus.Counter
	MemoriesDeleted   prometheus.Counter
	PlanUpgrades      prometheus.Counter
	CaptionsGenerated prometheus.Counter
	LimitRejections   *prometheus.CounterVec

	// Storage metrics
	KVOperations *prometheus.CounterVec
	KVDuration   *prometheus.HistogramVec
}

// NewCollector returns the process-wide metrics collector. The first call
// builds it with the given namespace; later calls return the same collector
// and ignore their namespace argument. The singleton avoids duplicate
// registration when multiple containers are built in one process.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	roomsCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		},
	)

	roomsDeleted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_deleted_total",
			Help:      "Total number of rooms deleted",
		},
	)

	memoriesCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memories_created_total",
			Help:      "Total number of memories created",
		},
	)

	memoriesDeleted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memories_deleted_total",
			Help:      "Total number of memories deleted",
		},
	)

	planUpgrades := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_upgrades_total",
			Help:      "Total number of premium upgrades",
		},
	)

	captionsGenerated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captions_generated_total",
			Help:      "Total number of captions generated",
		},
	)

	limitRejections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limit_rejections_total",
			Help:      "Total number of creations rejected by plan limits",
		},
		[]string{"resource"},
	)

	kvOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kv_operations_total",
			Help:      "Total number of key-value store operations",
		},
		[]string{"operation", "status"},
	)

	kvDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kv_operation_duration_seconds",
			Help:      "Key-value store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		roomsCreated,
		roomsDeleted,
		memoriesCreated,
		memoriesDeleted,
		planUpgrades,
		captionsGenerated,
		limitRejections,
		kvOperations,
		kvDuration,
	)

	globalCollector = &Collector{
		registry:          registry,
		HTTPRequests:      httpRequests,
		HTTPDuration:      httpDuration,
		RoomsCreated:      roomsCreated,
		RoomsDeleted:      roomsDeleted,
		MemoriesCreated:   memoriesCreated,
		MemoriesDeleted:   memoriesDeleted,
		PlanUpgrades:      planUpgrades,
		CaptionsGenerated: captionsGenerated,
		LimitRejections:   limitRejections,
		KVOperations:      kvOperations,
		KVDuration:        kvDuration,
	}

	return globalCollector
}

// Registry exposes the underlying registry for the /metrics handler
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveHTTP records a completed HTTP request
func (c *Collector) ObserveHTTP(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveKV records a completed key-value store operation
func (c *Collector) ObserveKV(operation, status string, duration time.Duration) {
	c.KVOperations.WithLabelValues(operation, status).Inc()
	c.KVDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
