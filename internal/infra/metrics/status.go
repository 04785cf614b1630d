package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/timdeluxe/subiquity/internal/domain"
)

// Outcome labels for status checks.
const (
	OutcomeValid   = "valid"
	OutcomeExpired = "expired"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	once sync.Once

	statusChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_status_checks_total",
			Help: "Total number of subscription status checks by outcome.",
		},
		[]string{"outcome"},
	)

	checkDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subscription_check_duration_seconds",
			Help:    "Latency distribution of subscription status checks.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	activableServices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscription_activable_services",
			Help: "Number of activable services in the last successful check.",
		},
	)

	monitorTokenValid = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscription_monitor_token_valid",
			Help: "Whether the monitored token resolved to a live subscription on the last poll (1) or not (0).",
		},
	)
)

// MustRegister registers all collectors with Prometheus exactly once.
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			statusChecksTotal,
			checkDurationSeconds,
			activableServices,
			monitorTokenValid,
		)
	})
}

// ObserveStatusCheck records one finished check.
func ObserveStatusCheck(outcome string, seconds float64) {
	statusChecksTotal.WithLabelValues(outcome).Inc()
	checkDurationSeconds.WithLabelValues(outcome).Observe(seconds)
}

// SetActivableServices updates the service-count gauge.
func SetActivableServices(n int) {
	activableServices.Set(float64(n))
}

// SetMonitorTokenValid updates the poller gauge.
func SetMonitorTokenValid(valid bool) {
	if valid {
		monitorTokenValid.Set(1)
	} else {
		monitorTokenValid.Set(0)
	}
}

// CheckOutcome maps a domain error to its outcome label; nil maps to valid.
func CheckOutcome(err error) string {
	if err == nil {
		return OutcomeValid
	}
	var invalid *domain.InvalidTokenError
	var expired *domain.ExpiredTokenError
	switch {
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case errors.As(err, &expired):
		return OutcomeExpired
	default:
		return OutcomeError
	}
}
