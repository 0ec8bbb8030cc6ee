package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-MeetingBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/available-slots
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /calendar/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /calendar/available-slots - Invalid window: %v", err)
			handlers.RespondBadRequest(w, handlers.ErrorDetail(err, getAvailableSlots.ErrInvalidInput))

		case errors.Is(err, getAvailableSlots.ErrProviderUnavailable):
			h.logger.Error("GET /calendar/available-slots - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /calendar/available-slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar/available-slots - Slots retrieved successfully: slots_count=%d, source=%s",
		len(result.Slots), result.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
