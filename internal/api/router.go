package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	approveBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_bookings"
	rejectBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/reject_booking"
	submitInquiryHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	CreateBooking     *createBookingHandler.Handler
	GetBooking        *getBookingHandler.Handler
	GetBookings       *getBookingsHandler.Handler
	ApproveBooking    *approveBookingHandler.Handler
	RejectBooking     *rejectBookingHandler.Handler
	CancelBooking     *cancelBookingHandler.Handler
	DeleteBooking     *deleteBookingHandler.Handler
	GetAvailableSlots *getAvailableSlotsHandler.Handler
	SubmitInquiry     *submitInquiryHandler.Handler
}

// RouterConfig параметры защиты маршрутов
type RouterConfig struct {
	AdminSecret  string
	TrustProxy   bool
	MaxBodyBytes int64
	MetricsPath  string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewRouter собирает маршруты /api/v1, /health и /metrics.
// metricsCollector может быть nil: тогда /metrics не публикуется.
func NewRouter(
	h Handlers,
	limiter middleware.RateLimiter,
	metricsCollector *metrics.Metrics,
	cfg RouterConfig,
	logger Logger,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(logger))
	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
	}
	r.Use(middleware.MaxBody(cfg.MaxBodyBytes))

	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	if metricsCollector != nil {
		metricsPath := cfg.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.Handle(metricsPath, metricsCollector.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	rateLimited := middleware.RateLimit(limiter, cfg.TrustProxy, metricsCollector, logger)

	// Свободные слоты для выбора клиентом
	api.HandleFunc("/calendar/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// Заявка на встречу
	api.Handle("/bookings", rateLimited(http.HandlerFunc(h.CreateBooking.Handle))).Methods(http.MethodPost)

	// Форма обратной связи
	api.Handle("/inquiry", rateLimited(http.HandlerFunc(h.SubmitInquiry.Handle))).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <secret> или X-Admin-Key)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.AdminSecret, logger))

	admin.HandleFunc("/bookings", h.GetBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", h.DeleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/approve", h.ApproveBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/reject", h.RejectBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPost)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
