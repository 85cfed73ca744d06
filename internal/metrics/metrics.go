// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kbs"

var (
	// SnapshotRefreshDuration times a full aggregate snapshot load.
	SnapshotRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_refresh_duration_seconds",
		Help:      "Duration of a full content snapshot load.",
		Buckets:   prometheus.DefBuckets,
	})

	// RemoteReadFailures counts list/get calls recovered to a default.
	RemoteReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_read_failures_total",
		Help:      "Remote reads that failed and were replaced by an empty or default value.",
	}, []string{"entity"})

	// Mutations counts admin and visitor writes by outcome.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Content mutations by entity, operation and result.",
	}, []string{"entity", "op", "result"})

	// LoginAttempts counts admin login attempts by result.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_login_attempts_total",
		Help:      "Admin login attempts by result.",
	}, []string{"result"})

	// StoreQueryDuration times individual remote store calls.
	StoreQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_query_duration_seconds",
		Help:      "Remote store call latency by operation.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"op"})

	// HTTPRequestDuration times page and admin requests.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// ContactDispatches counts fire-and-forget contact mail hand-offs.
	ContactDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_dispatch_total",
		Help:      "Contact drafts handed to the mail transport by result.",
	}, []string{"result"})
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
