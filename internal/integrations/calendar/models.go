package calendar

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Availability занятость календаря в окне
type Availability struct {
	Busy   []domain.BusyInterval
	Source domain.SlotSource
}

// EventRequest параметры создаваемой встречи
type EventRequest struct {
	Summary        string
	Description    string
	Start          time.Time
	End            time.Time
	TimeZone       string
	AttendeeEmails []string
	RequestID      string // идемпотентный ключ запроса на создание конференции
}

// Event созданная встреча
type Event struct {
	ID       string
	MeetLink string
	HTMLLink string
}
