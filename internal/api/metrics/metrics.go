// Package metrics defines and registers all custom Prometheus metrics for
// the coffee shop API. It is the single source of truth for metric names,
// labels, and help strings; importing the package registers everything with
// the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kawuz"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "captcha_rejected", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "captcha_rejected", "username_taken", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successfully committed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of successfully committed orders.",
	},
)

// OrdersRejectedTotal counts orders that failed validation or commit.
// Label:
//   - reason: "not_logged_in", "product_not_found", "insufficient_stock", "error"
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of rejected orders, by reason.",
	},
	[]string{"reason"},
)

// OrderValueTotal accumulates the grand totals of committed orders.
var OrderValueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_value_total",
		Help:      "Cumulative value of committed orders.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// EmailsSentTotal counts order-summary delivery attempts.
// Label:
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of order notification deliveries, by result.",
	},
	[]string{"result"},
)
