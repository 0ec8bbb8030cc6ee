package cancel_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}
