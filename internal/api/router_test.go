package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approveBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_bookings"
	rejectBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/reject_booking"
	submitInquiryHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/infra/ratelimit"
	bookingRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
	bookingsService "github.com/m04kA/SMC-MeetingBooking/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/notifications"
	approveBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/approve_booking"
	createBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/get_available_slots"
	rejectBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/reject_booking"
	submitInquiryUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
)

const testAdminSecret = "test-admin-secret"

type testServer struct {
	handler http.Handler
	repo    *bookingRepo.MemoryRepository
}

// newTestServer собирает сервис так же, как main в development: память, mock календарь, noop почта
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewNop()
	m := metrics.New("meeting_booking_test")
	policy := domain.DefaultBusinessHoursPolicy()

	repo := bookingRepo.NewMemoryRepository()
	cal := calendar.NewMock(log)

	dispatcher := notifications.NewDispatcher(mailer.NewNoopTransport(log), notifications.DispatcherConfig{
		Workers:     1,
		QueueSize:   50,
		SendTimeout: time.Second,
	}, log, m)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dispatcher.Stop(ctx)
	})

	renderer, err := notifications.NewRenderer()
	require.NoError(t, err)
	notifier := notifications.NewService(dispatcher, renderer, notifications.Config{
		AdminEmail:    "admin@example.com",
		PublicBaseURL: "http://localhost:3000",
		Timezone:      policy.TimezoneName(),
	}, log)

	bookingSvc := bookingsService.NewService(repo, m, log)

	h := Handlers{
		CreateBooking:     createBookingHandler.NewHandler(createBookingUC.NewUseCase(repo, notifier, m, log), log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		GetBookings:       getBookingsHandler.NewHandler(bookingSvc, log),
		ApproveBooking:    approveBookingHandler.NewHandler(approveBookingUC.NewUseCase(repo, cal, notifier, policy, m, log), log),
		RejectBooking:     rejectBookingHandler.NewHandler(rejectBookingUC.NewUseCase(repo, notifier, m, log), log),
		CancelBooking:     cancelBookingHandler.NewHandler(bookingSvc, log),
		DeleteBooking:     deleteBookingHandler.NewHandler(bookingSvc, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUC.NewUseCase(cal, policy, log), log),
		SubmitInquiry:     submitInquiryHandler.NewHandler(submitInquiryUC.NewUseCase(notifier, log), true, log),
	}

	limiter := ratelimit.NewMemoryLimiter(ratelimit.Policy{Requests: 10, Window: time.Hour})

	router := NewRouter(h, limiter, m, RouterConfig{
		AdminSecret:  testAdminSecret,
		MaxBodyBytes: 64 << 10,
		MetricsPath:  "/metrics",
	}, log)

	return &testServer{handler: router, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:51000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAdminSecret}
}

const acmeBooking = `{
	"companyName": "Acme",
	"contactName": "Jane",
	"email": "jane@acme.com",
	"preferredSlots": [
		{"date": "2025-03-10", "startTime": "10:00", "endTime": "11:00"},
		{"date": "2025-03-11", "startTime": "14:00", "endTime": "15:00"}
	]
}`

type bookingEnvelope struct {
	Success bool `json:"success"`
	Booking struct {
		ID             string `json:"id"`
		Status         string `json:"status"`
		PreferredSlots []struct {
			Date      string `json:"date"`
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"preferredSlots"`
		ConfirmedSlot *struct {
			Date      string `json:"date"`
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"confirmedSlot"`
		MeetLink *string `json:"meetLink"`
	} `json:"booking"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) bookingEnvelope {
	t.Helper()
	var env bookingEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_CreateAndApproveBooking(t *testing.T) {
	srv := newTestServer(t)

	// 1. Клиент создает заявку
	rec := srv.do(t, http.MethodPost, "/api/v1/bookings", acmeBooking, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeEnvelope(t, rec)
	assert.True(t, created.Success)
	assert.Equal(t, "pending", created.Booking.Status)
	require.Len(t, created.Booking.PreferredSlots, 2)
	bookingID := created.Booking.ID
	require.NotEmpty(t, bookingID)

	// 2. Администратор выбирает второй слот
	rec = srv.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/approve", `{"selectedSlotIndex": 1}`, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	approved := decodeEnvelope(t, rec)
	assert.Equal(t, "approved", approved.Booking.Status)
	require.NotNil(t, approved.Booking.ConfirmedSlot)
	assert.Equal(t, "2025-03-11", approved.Booking.ConfirmedSlot.Date)
	assert.Equal(t, "14:00", approved.Booking.ConfirmedSlot.StartTime)
	require.NotNil(t, approved.Booking.MeetLink)
	assert.True(t, strings.HasPrefix(*approved.Booking.MeetLink, "https://meet.google.com/"))

	// 3. Повторная обработка запрещена
	rec = srv.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/reject", `{"reason": "too late"}`, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"booking has already been processed"}`, rec.Body.String())

	stored, err := srv.repo.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Nil(t, stored.AdminNotes)
}

func TestRouter_AdminRoutesRequireCredential(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/bookings", acmeBooking, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	bookingID := decodeEnvelope(t, rec).Booking.ID

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
	}{
		{name: "approve without credential", method: http.MethodPost, path: "/api/v1/bookings/" + bookingID + "/approve", body: `{"selectedSlotIndex": 0}`},
		{name: "reject with wrong key", method: http.MethodPost, path: "/api/v1/bookings/" + bookingID + "/reject", headers: map[string]string{"X-Admin-Key": "guess"}},
		{name: "cancel without credential", method: http.MethodPost, path: "/api/v1/bookings/" + bookingID + "/cancel"},
		{name: "delete without credential", method: http.MethodDelete, path: "/api/v1/bookings/" + bookingID},
		{name: "list without credential", method: http.MethodGet, path: "/api/v1/bookings"},
		{name: "get without credential", method: http.MethodGet, path: "/api/v1/bookings/" + bookingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.body, tt.headers)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	stored, err := srv.repo.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestRouter_AdminBookingManagement(t *testing.T) {
	srv := newTestServer(t)

	var ids []string
	for i := 0; i < 2; i++ {
		rec := srv.do(t, http.MethodPost, "/api/v1/bookings", acmeBooking, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decodeEnvelope(t, rec).Booking.ID)
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/bookings/"+ids[0]+"/cancel", "", map[string]string{"X-Admin-Key": testAdminSecret})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "cancelled", decodeEnvelope(t, rec).Booking.Status)

	rec = srv.do(t, http.MethodPost, "/api/v1/bookings/"+ids[0]+"/cancel", "", adminHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/bookings?status=pending", "", adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Bookings []struct {
			ID string `json:"id"`
		} `json:"bookings"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, ids[1], list.Bookings[0].ID)

	rec = srv.do(t, http.MethodGet, "/api/v1/bookings?status=archived", "", adminHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/bookings/"+ids[1], "", adminHeaders())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/bookings/"+ids[1], "", adminHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/bookings/"+ids[1]+"/approve", `{"selectedSlotIndex": 0}`, adminHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RateLimitsPublicPosts(t *testing.T) {
	srv := newTestServer(t)

	for i := 1; i <= 10; i++ {
		rec := srv.do(t, http.MethodPost, "/api/v1/bookings", acmeBooking, nil)
		require.Equal(t, http.StatusCreated, rec.Code, "request %d", i)
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/bookings", acmeBooking, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	bookings, err := srv.repo.List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 10)

	// Админские маршруты лимитом не ограничены
	rec = srv.do(t, http.MethodGet, "/api/v1/bookings", "", adminHeaders())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"companyName":`},
		{name: "missing slots", body: `{"companyName":"Acme","contactName":"Jane","email":"jane@acme.com","preferredSlots":[]}`},
		{name: "bad email", body: `{"companyName":"Acme","contactName":"Jane","email":"jane","preferredSlots":[{"date":"2025-03-10","startTime":"10:00","endTime":"11:00"}]}`},
		{name: "bad time", body: `{"companyName":"Acme","contactName":"Jane","email":"jane@acme.com","preferredSlots":[{"date":"2025-03-10","startTime":"25:00","endTime":"11:00"}]}`},
		{name: "company too long", body: fmt.Sprintf(`{"companyName":%q,"contactName":"Jane","email":"jane@acme.com","preferredSlots":[{"date":"2025-03-10","startTime":"10:00","endTime":"11:00"}]}`, strings.Repeat("a", 101))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/v1/bookings", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	bookings, err := srv.repo.List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestRouter_AvailableSlotsHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/calendar/available-slots", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var slots struct {
		Slots       []map[string]string `json:"slots"`
		GeneratedAt string              `json:"generatedAt"`
		Source      string              `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Equal(t, "mock", slots.Source)
	assert.NotEmpty(t, slots.Slots)
	_, err := time.Parse(time.RFC3339, slots.GeneratedAt)
	assert.NoError(t, err)

	rec = srv.do(t, http.MethodGet, "/api/v1/calendar/available-slots?from=2025-03-20&to=2025-03-10", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/calendar/available-slots?from=20-03-2025", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/v1/calendar/available-slots"`)
}

func TestRouter_Inquiry(t *testing.T) {
	srv := newTestServer(t)

	body := `{"company":"Acme","name":"Jane","email":"jane@acme.com","category":"partnership","message":"Hello"}`
	rec := srv.do(t, http.MethodPost, "/api/v1/inquiry", body, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/inquiry", `{"company":"Acme"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SingleSlotScenario(t *testing.T) {
	srv := newTestServer(t)

	body := `{"companyName":"Acme","contactName":"Jane","email":"jane@acme.com","preferredSlots":[{"date":"2025-03-10","startTime":"10:00","endTime":"11:00"}]}`
	rec := srv.do(t, http.MethodPost, "/api/v1/bookings", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeEnvelope(t, rec)
	assert.Equal(t, "pending", created.Booking.Status)
	assert.Len(t, created.Booking.PreferredSlots, 1)

	rec = srv.do(t, http.MethodPost, "/api/v1/bookings/"+created.Booking.ID+"/approve", `{"selectedSlotIndex":0}`, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	approved := decodeEnvelope(t, rec)
	assert.Equal(t, "approved", approved.Booking.Status)
	require.NotNil(t, approved.Booking.ConfirmedSlot)
	assert.Equal(t, created.Booking.PreferredSlots[0].Date, approved.Booking.ConfirmedSlot.Date)
	assert.Equal(t, created.Booking.PreferredSlots[0].StartTime, approved.Booking.ConfirmedSlot.StartTime)
	assert.Equal(t, created.Booking.PreferredSlots[0].EndTime, approved.Booking.ConfirmedSlot.EndTime)
}
