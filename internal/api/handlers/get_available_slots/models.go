package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
	getAvailableSlots "github.com/m04kA/SMC-MeetingBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots       []models.SlotResponse `json:"slots"`
	GeneratedAt string                `json:"generatedAt"`
	Source      string                `json:"source"`
}

// ToUseCaseRequest создает запрос use case из query параметров from/to (YYYY-MM-DD, опционально)
func ToUseCaseRequest(fromStr, toStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]models.SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, models.FromDomainSlot(s))
	}

	return &AvailableSlotsResponse{
		Slots:       slots,
		GeneratedAt: resp.GeneratedAt.UTC().Format(time.RFC3339),
		Source:      string(resp.Source),
	}
}
