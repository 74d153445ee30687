// Package metrics defines and registers all custom Prometheus metrics for
// the sales platform services. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ventas"

// ── Gateway metrics ──────────────────────────────────────────────────────────

// GatewayRequestsTotal counts auth-filter decisions.
// Label:
//   - decision: "forwarded", "preflight", "public", "rejected_bad_header",
//     "rejected_unauthorized"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of requests handled by the gateway auth filter, by decision.",
	},
	[]string{"decision"},
)

// GatewayValidationDuration measures the latency of the token validation
// call from the gateway to the identity service.
// Label:
//   - outcome: "ok" or "error"
var GatewayValidationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_validation_duration_seconds",
		Help:      "Duration of token validation calls to the identity service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Identity metrics ─────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_found", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ValidationsTotal counts token validation requests served by the identity
// service.
// Label:
//   - result: "success", "invalid_token", "not_found", "error"
var ValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validation requests, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registration attempts, by result.",
	},
	[]string{"result"},
)

// ClientLinksTotal counts second-phase provisioning outcomes. A "failed"
// link leaves the account permanently unlinked unless retried.
// Label:
//   - result: "linked" or "failed"
var ClientLinksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_links_total",
		Help:      "Total number of client provisioning link attempts, by result.",
	},
	[]string{"result"},
)

// ── Sales metrics ────────────────────────────────────────────────────────────

// SalesProcessedTotal counts successfully recorded sales.
// Label:
//   - payment_method: "EFECTIVO" or "TARJETA"
var SalesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_processed_total",
		Help:      "Total number of sales successfully processed, by payment method.",
	},
	[]string{"payment_method"},
)

// SalesErrorsTotal counts failed sale processing attempts.
// Label:
//   - reason: short failure description (e.g. "order_not_found", "card_required")
var SalesErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_errors_total",
		Help:      "Total number of sale processing attempts that failed.",
	},
	[]string{"reason"},
)
