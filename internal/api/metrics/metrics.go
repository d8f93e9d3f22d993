// Package metrics defines and registers all custom Prometheus metrics for the
// intern tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interntracker"

// ── Time clock metrics ────────────────────────────────────────────────────────

// ClockInsTotal counts successful clock-ins.
// Label:
//   - company: the company/location the session was opened against
var ClockInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_ins_total",
		Help:      "Total number of successful clock-ins.",
	},
	[]string{"company"},
)

// ClockOutsTotal counts successful clock-outs.
// Label:
//   - kind: "normal" or "fix" (a missed clock-out closed after the fact)
var ClockOutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_outs_total",
		Help:      "Total number of successful clock-outs, by kind.",
	},
	[]string{"kind"},
)

// BackfillsTotal counts manually backfilled past sessions.
var BackfillsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backfills_total",
		Help:      "Total number of manually backfilled time entries.",
	},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivitiesTotal counts activity-log mutations.
// Label:
//   - op: "add", "update", "delete", or "save" (whole-log replace)
var ActivitiesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_total",
		Help:      "Total number of activity log mutations, by operation.",
	},
	[]string{"op"},
)

// ReportsGeneratedTotal counts rendered project-log reports.
var ReportsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of project log reports generated.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected" (unknown or too-short username)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks the current number of signed-in users.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of signed-in users.",
	},
)
