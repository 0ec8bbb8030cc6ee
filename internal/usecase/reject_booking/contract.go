package reject_booking

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateIfStatus(ctx context.Context, id string, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error)
}

// Notifier уведомление клиента об отказе
type Notifier interface {
	BookingRejected(booking *domain.Booking, reason string)
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
