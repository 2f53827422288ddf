// Package metrics defines the Prometheus collectors of the ParkApp API. All
// collectors register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parkapp"

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - operation: "register", "login", "admin_login"
//   - outcome: "success", "invalid_credentials", "duplicate", "invalid_input", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - company: "new" when the registration created the company, else "existing"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by whether the company was created.",
	},
	[]string{"company"},
)

var VehicleEntriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_entries_total",
		Help:      "Total number of vehicle check-ins recorded.",
	},
)

// VehicleExitsTotal counts check-out attempts.
// Label:
//   - result: "exited" or "not_found"
var VehicleExitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_exits_total",
		Help:      "Total number of vehicle check-out attempts, by result.",
	},
	[]string{"result"},
)

// HTTPRequestDuration measures request latency at the router.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
