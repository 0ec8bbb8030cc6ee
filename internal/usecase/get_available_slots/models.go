package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов.
// Пустые границы заменяются окном бронирования по умолчанию.
type Request struct {
	From *time.Time // Первая дата окна (без времени)
	To   *time.Time // Последняя дата окна включительно
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Slots       []domain.DateTimeSlot // Свободные слоты по возрастанию даты и времени
	GeneratedAt time.Time             // Момент расчета
	Source      domain.SlotSource     // live или mock
}
