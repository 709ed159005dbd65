// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ytapi"

var (
	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestsTotal tracks calls to external services.
	// Labels:
	//   - service: oembed, timedtext, anthropic
	//   - status: success, not_found, error
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream service requests",
		},
		[]string{"service", "status"},
	)

	// StorageOperationsTotal tracks persistent storage operations.
	// Labels:
	//   - operation: save, get, delete, list
	//   - status: success, miss, error, disabled
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of transcript storage operations",
		},
		[]string{"operation", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Upstream service constants.
const (
	UpstreamOEmbed    = "oembed"
	UpstreamTimedText = "timedtext"
	UpstreamAnthropic = "anthropic"
)

// Upstream status constants.
const (
	UpstreamStatusSuccess  = "success"
	UpstreamStatusNotFound = "not_found"
	UpstreamStatusError    = "error"
)

// Storage operation constants.
const (
	StorageOpSave   = "save"
	StorageOpGet    = "get"
	StorageOpDelete = "delete"
	StorageOpList   = "list"
)

// Storage status constants.
const (
	StorageStatusSuccess  = "success"
	StorageStatusMiss     = "miss"
	StorageStatusError    = "error"
	StorageStatusDisabled = "disabled"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
