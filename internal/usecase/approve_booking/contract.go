package approve_booking

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateIfStatus(ctx context.Context, id string, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error)
}

// CalendarProvider интерфейс календаря для создания встречи
type CalendarProvider interface {
	CreateEvent(ctx context.Context, req *calendar.EventRequest) (*calendar.Event, error)
}

// Notifier уведомление клиента об одобрении
type Notifier interface {
	BookingApproved(booking *domain.Booking)
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
