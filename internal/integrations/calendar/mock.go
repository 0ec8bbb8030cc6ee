package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

const placeholderMeetBaseURL = "https://meet.google.com/"

// Mock календарь без занятых интервалов для development без учетных данных
type Mock struct {
	log Logger
}

func NewMock(log Logger) *Mock {
	return &Mock{log: log}
}

func (m *Mock) FreeBusy(_ context.Context, from, to time.Time) (*Availability, error) {
	m.log.Info("Calendar mock: freebusy %s - %s, no busy intervals", from.Format(time.RFC3339), to.Format(time.RFC3339))
	return &Availability{Busy: []domain.BusyInterval{}, Source: domain.SlotSourceMock}, nil
}

func (m *Mock) CreateEvent(_ context.Context, req *EventRequest) (*Event, error) {
	event := PlaceholderEvent()
	m.log.Info("Calendar mock: placeholder event %s for %q", event.ID, req.Summary)
	return event, nil
}

// PlaceholderEvent встреча-заглушка со ссылкой в формате Google Meet
func PlaceholderEvent() *Event {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	code := fmt.Sprintf("%s-%s-%s", id[0:3], id[3:7], id[7:10])
	return &Event{
		ID:       "mock-" + id,
		MeetLink: placeholderMeetBaseURL + code,
	}
}

// Unconfigured календарь без учетных данных в production: любой вызов завершается ошибкой
type Unconfigured struct{}

func NewUnconfigured() Unconfigured {
	return Unconfigured{}
}

func (Unconfigured) FreeBusy(context.Context, time.Time, time.Time) (*Availability, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CreateEvent(context.Context, *EventRequest) (*Event, error) {
	return nil, ErrNotConfigured
}
