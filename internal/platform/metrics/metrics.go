package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Increment helpers
// are nil-safe so services can run without metrics in tests.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	PaymentsCreated prometheus.Counter
	OTPRequests     prometheus.Counter
	AuditDropped    prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusdesk_registrations_total",
			Help: "Registration attempts by domain and outcome",
		}, []string{"domain", "outcome"}),
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusdesk_payments_created_total",
			Help: "Total number of payment links generated",
		}),
		OTPRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusdesk_otp_requests_total",
			Help: "Total number of OTP codes issued",
		}),
		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusdesk_audit_events_dropped_total",
			Help: "Audit events dropped because the fan-out buffer was full",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campusdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// IncrementRegistration records a registration attempt outcome.
func (m *Metrics) IncrementRegistration(domain, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(domain, outcome).Inc()
}

// IncrementPaymentsCreated increments the payments created counter.
func (m *Metrics) IncrementPaymentsCreated() {
	if m == nil {
		return
	}
	m.PaymentsCreated.Inc()
}

// IncrementOTPRequests increments the OTP request counter.
func (m *Metrics) IncrementOTPRequests() {
	if m == nil {
		return
	}
	m.OTPRequests.Inc()
}

// IncrementAuditDropped increments the dropped audit event counter.
func (m *Metrics) IncrementAuditDropped() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}

// ObserveRequest records request latency for a route.
func (m *Metrics) ObserveRequest(route, method string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
