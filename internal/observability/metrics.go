// Package observability exposes prometheus instrumentation for the engine's
// operations. Counters are registered via promauto and served on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrderTransitionsTotal counts committed order status transitions by
	// resulting status.
	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "order_transitions_total", Help: "Committed order status transitions"},
		[]string{"status"},
	)

	// AssignmentsTotal counts committed order-driver assignments.
	AssignmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "assignments_total", Help: "Committed order assignments"},
	)

	// LocationUpdatesTotal counts committed driver location fixes.
	LocationUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "location_updates_total", Help: "Committed driver location updates"},
	)

	// HandoversTotal counts cash handover registrations and resolutions by
	// resulting status.
	HandoversTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "cash_handovers_total", Help: "Cash handover state changes"},
		[]string{"status"},
	)

	// NotificationFailuresTotal counts best-effort notification attempts
	// that returned an error.
	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "notification_failures_total", Help: "Failed notification port invocations"},
	)
)
