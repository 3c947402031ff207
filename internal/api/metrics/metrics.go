// Package metrics defines and registers all custom Prometheus metrics for
// the learning platform API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; only API-layer code (handlers, middleware, dispatcher) touches them
// so the core services stay free of instrumentation concerns.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learning"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts rejected requests at the authentication and
// authorization layers.
// Label:
//   - reason: "expired", "bad_signature", "malformed", "missing_principal", "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by auth, by reason.",
	},
	[]string{"reason"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts successfully created reviews.
// Label:
//   - subject_type: "course" or "instructor"
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created, by subject type.",
	},
	[]string{"subject_type"},
)

// ReviewConflictsTotal counts review writes rejected by the
// one-review-per-user-per-subject constraint.
var ReviewConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_conflicts_total",
		Help:      "Total number of duplicate review attempts rejected.",
	},
)

// ReviewMutationDuration measures how long a review mutation takes,
// including the synchronous aggregate recompute for instructor reviews.
// Labels:
//   - operation: "create", "update", "delete"
//   - subject_type: "course" or "instructor"
var ReviewMutationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_mutation_duration_seconds",
		Help:      "Duration of review mutations from request to persisted aggregate.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "subject_type"},
)

// ── Audit dispatcher metrics ──────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events that reached a terminal state.
// Label:
//   - result: "persisted", "failed", "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of review audit events, by terminal result.",
	},
	[]string{"result"},
)
