package approve_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
	approveBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/approve_booking"
)

// ApproveBookingRequest HTTP request model
type ApproveBookingRequest struct {
	SelectedSlotIndex *int    `json:"selectedSlotIndex" validate:"required,gte=0"`
	AdminNotes        *string `json:"adminNotes,omitempty" validate:"omitempty,max=1000"`
}

// ApproveBookingResponse HTTP response model
type ApproveBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApproveBookingRequest) ToUseCaseRequest(bookingID string) *approveBooking.Request {
	return &approveBooking.Request{
		BookingID:         bookingID,
		SelectedSlotIndex: *r.SelectedSlotIndex,
		AdminNotes:        r.AdminNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveBooking.Response) *ApproveBookingResponse {
	return &ApproveBookingResponse{
		Success: true,
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
