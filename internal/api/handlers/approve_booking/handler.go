package approve_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	approveBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/approve_booking"
	"github.com/m04kA/SMC-MeetingBooking/pkg/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgAlreadyProcessed   = "booking has already been processed"
	msgInvalidSlot        = "selected slot index is out of range"
)

type Handler struct {
	useCase ApproveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ApproveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req ApproveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validation.Struct(&req); err != nil {
		h.logger.Warn("POST /bookings/{id}/approve - Validation failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, validation.Describe(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, approveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/approve - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveBooking.ErrAlreadyProcessed):
			h.logger.Warn("POST /bookings/{id}/approve - Already processed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyProcessed)

		case errors.Is(err, approveBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings/{id}/approve - Invalid slot: booking_id=%s, index=%d", bookingID, *req.SelectedSlotIndex)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, approveBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/approve - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, handlers.ErrorDetail(err, approveBooking.ErrInvalidInput))

		case errors.Is(err, approveBooking.ErrProviderUnavailable):
			h.logger.Error("POST /bookings/{id}/approve - Calendar unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/approve - Failed to approve booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/approve - Booking approved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
