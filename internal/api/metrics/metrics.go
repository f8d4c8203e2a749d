// Package metrics defines and registers all custom Prometheus metrics for the
// visa front-end. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed on /metrics by the front-end server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "visafrontend"

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// ── Credential client ─────────────────────────────────────────────────────────

// CredentialRequestsTotal counts calls to the remote credential endpoints.
// Labels:
//   - endpoint: "login" or "register"
//   - outcome: success, rejected (non-2xx), error (transport), malformed (bad 2xx body)
var CredentialRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_requests_total",
		Help:      "Total number of remote credential requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// CredentialRequestDuration measures round-trip latency of credential requests.
var CredentialRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "credential_request_duration_seconds",
		Help:      "Latency of remote credential requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session lifecycle ─────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session manager transitions.
// Labels:
//   - op: "login", "register", "logout", "restore"
//   - outcome: success, rejected, invalid, superseded, expired, absent
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session manager transitions, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// LandingDisagreementsTotal counts logins where the role on the user record and
// the role decoded from the token led to different dashboards.
var LandingDisagreementsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "landing_disagreements_total",
		Help:      "Logins whose user record and token pointed at different dashboards.",
	},
)

// ── Session store ─────────────────────────────────────────────────────────────

// StoreCorruptTotal counts persisted sessions that could not be read back.
// Label:
//   - backend: file, redis, mongo, memory
var StoreCorruptTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_corrupt_total",
		Help:      "Persisted sessions discarded as corrupt, by backend.",
	},
	[]string{"backend"},
)

// StoreErrorsTotal counts backend failures.
// Labels:
//   - backend: file, redis, mongo, memory
//   - op: load, save, remove
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Session backend failures, by backend and operation.",
	},
	[]string{"backend", "op"},
)

// NavigationsTotal counts delivered navigation signals.
// Label:
//   - route: destination route path
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Navigation signals delivered, by destination route.",
	},
	[]string{"route"},
)
