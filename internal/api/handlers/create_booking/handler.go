package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingBooking/pkg/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validation.Struct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, validation.Describe(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking: %v", err)
			handlers.RespondBadRequest(w, handlers.ErrorDetail(err, createBooking.ErrInvalidInput))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: company=%q, error=%v", req.CompanyName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s", result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
