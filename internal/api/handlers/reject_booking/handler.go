package reject_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	rejectBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/reject_booking"
	"github.com/m04kA/SMC-MeetingBooking/pkg/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgAlreadyProcessed   = "booking has already been processed"
)

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req RejectBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validation.Struct(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reject - Validation failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, validation.Describe(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reject - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectBooking.ErrAlreadyProcessed):
			h.logger.Warn("POST /bookings/{id}/reject - Already processed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyProcessed)

		case errors.Is(err, rejectBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reject - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, handlers.ErrorDetail(err, rejectBooking.ErrInvalidInput))

		default:
			h.logger.Error("POST /bookings/{id}/reject - Failed to reject booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reject - Booking rejected successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
