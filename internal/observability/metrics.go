package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec
	goalsTotal        *prometheus.CounterVec
	commissionsTotal  *prometheus.CounterVec
	passwordResets    *prometheus.CounterVec
	auditEntriesTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the tracker.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		goalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_goals_total",
			Help: "Goal creation attempts by outcome.",
		}, []string{"outcome"})

		commissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_commissions_total",
			Help: "Commission ledger mutations by operation.",
		}, []string{"operation"})

		passwordResets = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_password_resets_total",
			Help: "Password reset requests and redemptions by outcome.",
		}, []string{"outcome"})

		auditEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_audit_entries_total",
			Help: "Audit entries by action and outcome.",
		}, []string{"action", "outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			goalsTotal,
			commissionsTotal,
			passwordResets,
			auditEntriesTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Goals exposes the goal creation counter.
func Goals() *prometheus.CounterVec {
	RegisterMetrics()
	return goalsTotal
}

// Commissions exposes the commission ledger counter.
func Commissions() *prometheus.CounterVec {
	RegisterMetrics()
	return commissionsTotal
}

// PasswordResets exposes the password reset counter.
func PasswordResets() *prometheus.CounterVec {
	RegisterMetrics()
	return passwordResets
}

// AuditEntries exposes the audit entry counter.
func AuditEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return auditEntriesTotal
}
