// Package metrics holds the Prometheus collectors exposed on /metrics.
// Collectors register with the default registry on import.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menvo"

// HTTPRequestsTotal counts handled requests by method, route template and status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// BookingsTotal counts booking attempts.
// Label result: "booked", "slot_unavailable", "invalid", "error"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of booking attempts by outcome.",
	},
	[]string{"result"},
)

var AppointmentStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_status_changes_total",
		Help:      "Total number of appointment status transitions by target status.",
	},
	[]string{"status"},
)

// NotificationsTotal counts published appointment events. Label result: "ok" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of appointment events published to the broker.",
	},
	[]string{"type", "result"},
)

var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of appointments reminded.",
	},
)

// IdempotencyTotal counts Idempotency-Key decisions. Label result: "miss", "in_progress", "duplicate"
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_checks_total",
		Help:      "Total number of idempotency checks by result.",
	},
	[]string{"result"},
)

// LifecycleStatesTotal counts resolved lifecycle states served to clients
var LifecycleStatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_states_total",
		Help:      "Total number of lifecycle resolutions by state.",
	},
	[]string{"state"},
)

// ObserveHTTP records one finished request
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
