// Package metrics defines all custom Prometheus metrics for the CEE visits
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cee"

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

// RegistrationsTotal counts created accounts.
// Label:
//   - role: the role of the new account
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// PasswordResetsTotal counts reset-flow events.
// Label:
//   - stage: "requested", "completed" or "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset flow events, by stage.",
	},
	[]string{"stage"},
)

// TokensRevokedTotal counts logout revocations.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of session tokens revoked by logout.",
	},
)

// ── Visit metrics ─────────────────────────────────────────────────────────────

// VisitsCreatedTotal counts scheduled visits.
var VisitsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visits_created_total",
		Help:      "Total number of field visits scheduled.",
	},
)

// VisitStatusChangesTotal counts status transitions.
// Label:
//   - status: the status the visit moved to
var VisitStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visit_status_changes_total",
		Help:      "Total number of visit status transitions, by target status.",
	},
	[]string{"status"},
)

// ── Calculator metrics ────────────────────────────────────────────────────────

// EstimatesTotal counts calculator invocations.
// Label:
//   - result: "ok" or "invalid"
var EstimatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimates_total",
		Help:      "Total number of CEE estimate computations, by result.",
	},
	[]string{"result"},
)
