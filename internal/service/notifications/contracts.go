package notifications

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
)

// Transport отправка письма (SMTP, noop, unconfigured)
type Transport interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// Metrics счетчик уведомлений (*metrics.Metrics)
type Metrics interface {
	IncNotification(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
