// Package metrics defines all custom Prometheus metrics for the Ghars
// backend. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry via
// promauto at package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ghars"

// LoginsTotal counts login attempts.
// Labels:
//   - result: "admin", "student", or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token validations.
// Labels:
//   - result: "ok", "expired", or "invalid"
//
// Expired tokens are surfaced to clients identically to invalid ones; the
// split exists here only for operational visibility.
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validations, by outcome.",
	},
	[]string{"result"},
)

// PermissionDenialsTotal counts authorization denials on admin routes.
// Labels:
//   - permission: the missing permission name, or "role" for role mismatches
var PermissionDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denials_total",
		Help:      "Total number of permission denials, by missing permission.",
	},
	[]string{"permission"},
)

// PointsAwardedTotal counts points granted (or deducted) by admins.
var PointsAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total number of add-points operations performed.",
	},
)
