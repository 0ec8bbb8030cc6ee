package create_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MeetingBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// SlotRequest предпочтительный слот
type SlotRequest struct {
	Date      string `json:"date" validate:"required,date_iso"`  // "2025-03-10"
	StartTime string `json:"startTime" validate:"required,hhmm"` // "10:00"
	EndTime   string `json:"endTime" validate:"required,hhmm"`   // "11:00"
}

// CreateBookingRequest HTTP request model.
// Слотов может быть больше трех: лишние отбрасываются при создании.
type CreateBookingRequest struct {
	CompanyName    string        `json:"companyName" validate:"required,max=100,single_line"`
	ContactName    string        `json:"contactName" validate:"required,max=100,single_line"`
	Email          string        `json:"email" validate:"required,max=254,email"`
	Phone          *string       `json:"phone,omitempty" validate:"omitempty,max=30,single_line"`
	Message        *string       `json:"message,omitempty" validate:"omitempty,max=2000"`
	PreferredSlots []SlotRequest `json:"preferredSlots" validate:"required,min=1,dive"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	slots := make([]domain.DateTimeSlot, 0, len(r.PreferredSlots))
	for _, s := range r.PreferredSlots {
		slots = append(slots, domain.DateTimeSlot{
			Date:      s.Date,
			StartTime: types.TimeString(s.StartTime),
			EndTime:   types.TimeString(s.EndTime),
		})
	}

	return &createBooking.Request{
		CompanyName:    r.CompanyName,
		ContactName:    r.ContactName,
		Email:          r.Email,
		Phone:          r.Phone,
		Message:        r.Message,
		PreferredSlots: slots,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success: true,
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
