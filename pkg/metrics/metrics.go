package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of the service. A nil *Metrics records nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	BookingAttempts *prometheus.CounterVec
	DeleteBlocked   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
			[]string{"path", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			}, []string{"path", "method"},
		),
		BookingAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "interview_booking_attempts_total", Help: "Interview bookings by outcome"},
			[]string{"outcome"},
		),
		DeleteBlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "delete_blocked_total", Help: "Deletes refused because interviews still reference the entity"},
			[]string{"entity"},
		),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPLatency, m.BookingAttempts, m.DeleteBlocked)
	return m
}

// Booking counts one booking attempt. outcome is "booked" or the error kind.
func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(outcome).Inc()
}

// Blocked counts a delete refused by the integrity guard
func (m *Metrics) Blocked(entity string) {
	if m == nil {
		return
	}
	m.DeleteBlocked.WithLabelValues(entity).Inc()
}
