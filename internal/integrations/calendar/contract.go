package calendar

import (
	"context"
	"time"
)

// Provider внешний календарь: запрос занятости и создание встреч
type Provider interface {
	FreeBusy(ctx context.Context, from, to time.Time) (*Availability, error)
	CreateEvent(ctx context.Context, req *EventRequest) (*Event, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчик вызовов провайдера (*metrics.Metrics)
type Metrics interface {
	IncCalendarCall(operation, result string)
}
