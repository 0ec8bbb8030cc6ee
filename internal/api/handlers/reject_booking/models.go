package reject_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
	rejectBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/reject_booking"
)

// RejectBookingRequest HTTP request model; тело запроса может отсутствовать
type RejectBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// RejectBookingResponse HTTP response model
type RejectBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RejectBookingRequest) ToUseCaseRequest(bookingID string) *rejectBooking.Request {
	return &rejectBooking.Request{
		BookingID: bookingID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectBooking.Response) *RejectBookingResponse {
	return &RejectBookingResponse{
		Success: true,
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
