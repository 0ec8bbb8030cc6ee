package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// ErrInvalidSlot возвращается для слота с некорректной датой или временем
var ErrInvalidSlot = errors.New("invalid time slot")

// SlotSource откуда взяты данные о занятости календаря
type SlotSource string

const (
	SlotSourceLive SlotSource = "live"
	SlotSourceMock SlotSource = "mock"
)

// DateTimeSlot дата и время встречи в таймзоне бизнеса.
// Два слота равны, если совпадают дата и время начала; время конца информационное.
type DateTimeSlot struct {
	Date      string // YYYY-MM-DD
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Equal сравнивает слоты по дате и времени начала
func (s DateTimeSlot) Equal(other DateTimeSlot) bool {
	return s.Date == other.Date && s.StartTime == other.StartTime
}

// Validate проверяет формат даты и времени и что начало раньше конца
func (s DateTimeSlot) Validate() error {
	if _, err := time.Parse(DateFormat, s.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidSlot, s.Date)
	}
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidSlot, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidSlot, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidSlot)
	}
	return nil
}

// Interval возвращает начало и конец слота как моменты времени в указанной таймзоне
func (s DateTimeSlot) Interval(loc *time.Location) (time.Time, time.Time, error) {
	date, err := time.ParseInLocation(DateFormat, s.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidSlot, s.Date)
	}
	start, err := s.StartTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startTime: %v", ErrInvalidSlot, err)
	}
	end, err := s.EndTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endTime: %v", ErrInvalidSlot, err)
	}
	return start, end, nil
}

// String форматирует слот для логов и писем: "2025-03-10 10:00-11:00"
func (s DateTimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.StartTime, s.EndTime)
}

// BusyInterval занятый интервал календаря
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение с интервалом [start, end).
// Интервалы, которые только касаются границами, не пересекаются.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
