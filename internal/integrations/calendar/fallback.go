package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Fallback обертка для development: ошибка провайдера не прерывает сценарий.
// Занятость подменяется пустой (source=mock), встреча подменяется заглушкой.
// В production не используется.
type Fallback struct {
	inner Provider
	log   Logger
}

func NewFallback(inner Provider, log Logger) *Fallback {
	return &Fallback{inner: inner, log: log}
}

func (f *Fallback) FreeBusy(ctx context.Context, from, to time.Time) (*Availability, error) {
	availability, err := f.inner.FreeBusy(ctx, from, to)
	if err != nil {
		f.log.Warn("Calendar unavailable, using mock availability: %v", err)
		return &Availability{Busy: []domain.BusyInterval{}, Source: domain.SlotSourceMock}, nil
	}
	return availability, nil
}

func (f *Fallback) CreateEvent(ctx context.Context, req *EventRequest) (*Event, error) {
	event, err := f.inner.CreateEvent(ctx, req)
	if err != nil {
		placeholder := PlaceholderEvent()
		f.log.Warn("Calendar unavailable, using placeholder meet link %s: %v", placeholder.MeetLink, err)
		return placeholder, nil
	}
	return event, nil
}
