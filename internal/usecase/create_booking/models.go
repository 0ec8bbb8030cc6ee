package create_booking

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Request модель запроса на создание заявки на встречу
type Request struct {
	CompanyName    string                // Название компании
	ContactName    string                // Контактное лицо
	Email          string                // Email для связи
	Phone          *string               // Телефон (опционально)
	Message        *string               // Комментарий (опционально)
	PreferredSlots []domain.DateTimeSlot // Предпочтительные слоты, лишние после третьего отбрасываются
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
