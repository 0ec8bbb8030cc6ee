package reject_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Request модель запроса на отклонение заявки.
// Отсутствующая и пустая причина равнозначны.
type Request struct {
	BookingID string  // ID бронирования
	Reason    *string // Причина отказа (опционально)
}

// Response модель ответа с отклоненным бронированием
type Response struct {
	Booking *domain.Booking
}
