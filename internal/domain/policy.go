package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// BusinessHoursPolicy правила генерации слотов для встреч
type BusinessHoursPolicy struct {
	OpenTime              types.TimeString
	CloseTime             types.TimeString
	SlotDurationMinutes   int
	Location              *time.Location
	WindowStartOffsetDays int
	WindowDays            int
	SkipWeekends          bool
}

// DefaultBusinessHoursPolicy будни 10:00-18:00, часовые слоты, окно с завтра на 14 дней
func DefaultBusinessHoursPolicy() BusinessHoursPolicy {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return BusinessHoursPolicy{
		OpenTime:              DefaultOpenTime,
		CloseTime:             DefaultCloseTime,
		SlotDurationMinutes:   DefaultSlotDurationMinutes,
		Location:              loc,
		WindowStartOffsetDays: DefaultWindowStartOffsetDays,
		WindowDays:            DefaultWindowDays,
		SkipWeekends:          true,
	}
}

// IsBusinessDay returns false for weekends when the policy skips them
func (p BusinessHoursPolicy) IsBusinessDay(date time.Time) bool {
	if !p.SkipWeekends {
		return true
	}
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DefaultWindow окно бронирования относительно now: [now+offset, now+offset+days] в таймзоне бизнеса
func (p BusinessHoursPolicy) DefaultWindow(now time.Time) (time.Time, time.Time) {
	local := now.In(p.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
	start := today.AddDate(0, 0, p.WindowStartOffsetDays)
	end := start.AddDate(0, 0, p.WindowDays)
	return start, end
}

// TimezoneName название таймзоны для писем
func (p BusinessHoursPolicy) TimezoneName() string {
	if p.Location == nil {
		return "UTC"
	}
	return p.Location.String()
}
