package submit_inquiry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	submitInquiry "github.com/m04kA/SMC-MeetingBooking/internal/usecase/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/pkg/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInquiry     = "please check the form fields and try again"
	msgDeliveryFailed     = "failed to send inquiry, please try again later"
)

type Handler struct {
	useCase SubmitInquiryUseCase
	// showValidationDetails в production клиенту уходит только общее сообщение
	showValidationDetails bool
	logger                Logger
}

func NewHandler(useCase SubmitInquiryUseCase, showValidationDetails bool, logger Logger) *Handler {
	return &Handler{
		useCase:               useCase,
		showValidationDetails: showValidationDetails,
		logger:                logger,
	}
}

// Handle POST /api/v1/inquiry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /inquiry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validation.Struct(&req); err != nil {
		h.logger.Warn("POST /inquiry - Validation failed: %v", err)
		h.respondInvalid(w, validation.Describe(err))
		return
	}

	if err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest()); err != nil {
		switch {
		case errors.Is(err, submitInquiry.ErrInvalidInput):
			h.logger.Warn("POST /inquiry - Invalid inquiry: %v", err)
			h.respondInvalid(w, handlers.ErrorDetail(err, submitInquiry.ErrInvalidInput))

		case errors.Is(err, submitInquiry.ErrDeliveryFailed):
			h.logger.Error("POST /inquiry - Delivery failed: email=%s, error=%v", req.Email, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDeliveryFailed)

		default:
			h.logger.Error("POST /inquiry - Failed to submit inquiry: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inquiry - Inquiry submitted successfully: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, handlers.SuccessResponse{Success: true})
}

func (h *Handler) respondInvalid(w http.ResponseWriter, detail string) {
	if h.showValidationDetails {
		handlers.RespondBadRequest(w, detail)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidInquiry)
}
