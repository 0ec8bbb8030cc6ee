package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
)

// CalendarProvider интерфейс календаря для получения занятости
type CalendarProvider interface {
	// FreeBusy получает занятые интервалы в окне [from, to) одним запросом
	FreeBusy(ctx context.Context, from, to time.Time) (*calendar.Availability, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
