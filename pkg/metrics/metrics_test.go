package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.IncBookingTransition("approved")
		m.IncNotification("booking_approved_customer", "sent")
		m.IncRateLimited("/bookings")
		m.IncCalendarCall("freebusy", "ok")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("meeting-booking")

	m.IncBookingTransition("approved")
	m.IncBookingTransition("approved")
	m.IncNotification("new_booking_admin", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("new_booking_admin", "failed")))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "booking_transitions_total"))
}
