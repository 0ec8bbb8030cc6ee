package create_booking

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Notifier уведомления о новой заявке; отправка асинхронная и не возвращает ошибок
type Notifier interface {
	BookingCreated(booking *domain.Booking)
}

// Metrics интерфейс метрик переходов статусов
type Metrics interface {
	IncBookingTransition(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
