package approve_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Request модель запроса на одобрение заявки
type Request struct {
	BookingID         string  // ID бронирования
	SelectedSlotIndex int     // Индекс в списке предпочтительных слотов
	AdminNotes        *string // Заметки администратора (опционально)
}

// Response модель ответа с одобренным бронированием
type Response struct {
	Booking *domain.Booking
}
