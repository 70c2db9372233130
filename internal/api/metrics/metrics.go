// Package metrics defines and registers all custom Prometheus metrics for the
// ChartFlow portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chartflow"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthSubmissionsTotal counts auth modal submissions.
// Labels:
//   - mode: "login", "signup" or "forgot"
//   - outcome: "invalid", "succeeded", "failed", "unexpected" or "discarded"
var AuthSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_submissions_total",
		Help:      "Total number of auth modal submissions, by mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// GatewayCallDuration measures calls made to the identity service.
// Labels:
//   - operation: "signup", "signin", "signout", "recover", "refresh" or "user"
//   - result: "ok", "rejected" (structured error) or "error"
var GatewayCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of calls to the identity service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "result"},
)

// SessionEventsTotal counts session changes published to clients.
// Label:
//   - event: "INITIAL_SESSION", "SIGNED_IN", "SIGNED_OUT" or "TOKEN_REFRESHED"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session changes published, by event.",
	},
	[]string{"event"},
)

// SessionQueueDepth tracks pending session changes per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SessionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_queue_depth",
		Help:      "Current number of session changes pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Page metrics ──────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes on protected pages.
// Label:
//   - decision: "placeholder", "redirect" or "render"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions.",
	},
	[]string{"decision"},
)

// ActiveClients is the number of browser clients held in memory.
var ActiveClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_clients",
		Help:      "Number of browser clients with live auth state.",
	},
)

// SettingsSavedTotal counts successful settings saves.
var SettingsSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settings_saved_total",
		Help:      "Total number of settings saves.",
	},
)
