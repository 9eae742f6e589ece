package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("counts bookings and blocked deletes", func(t *testing.T) {
		m := New(prometheus.NewRegistry())

		m.Booking("booked")
		m.Booking("booked")
		m.Booking("quota_exceeded")
		m.Blocked("company")

		assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAttempts.WithLabelValues("booked")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAttempts.WithLabelValues("quota_exceeded")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.DeleteBlocked.WithLabelValues("company")))
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() {
			m.Booking("booked")
			m.Blocked("position")
		})
	})
}
