package submit_inquiry

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Notifier синхронная отправка обращения администратору
type Notifier interface {
	InquiryReceived(ctx context.Context, inquiry *domain.Inquiry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
