package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// generateDaySlots генерирует все слоты рабочего дня.
// Слоты идут с начала рабочего дня с фиксированным шагом; слот, выходящий за время закрытия, не создается.
func generateDaySlots(policy domain.BusinessHoursPolicy, date time.Time) ([]domain.DateTimeSlot, error) {
	if !policy.IsBusinessDay(date) {
		return []domain.DateTimeSlot{}, nil
	}

	dateStr := date.Format(domain.DateFormat)
	slots := make([]domain.DateTimeSlot, 0)
	current := policy.OpenTime

	for current.IsBefore(policy.CloseTime) {
		slotEnd, err := current.AddMinutes(policy.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(policy.CloseTime) {
			break
		}

		slots = append(slots, domain.DateTimeSlot{
			Date:      dateStr,
			StartTime: current,
			EndTime:   slotEnd,
		})
		current = slotEnd
	}

	return slots, nil
}

// filterAvailable оставляет слоты, которые начинаются строго позже now и не пересекаются с занятыми интервалами.
// Касание границами пересечением не считается:
// - Слот 10:00-11:00, занято 10:30-11:30 → пересечение
// - Слот 10:00-11:00, занято 11:00-12:00 → НЕТ пересечения
func filterAvailable(
	slots []domain.DateTimeSlot,
	busy []domain.BusyInterval,
	now time.Time,
	loc *time.Location,
) ([]domain.DateTimeSlot, error) {
	available := make([]domain.DateTimeSlot, 0, len(slots))

	for _, slot := range slots {
		start, end, err := slot.Interval(loc)
		if err != nil {
			return nil, err
		}

		if !start.After(now) {
			continue
		}
		if overlapsAny(start, end, busy) {
			continue
		}

		available = append(available, slot)
	}

	return available, nil
}

func overlapsAny(start, end time.Time, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// dateOnly берет календарную дату t и переносит ее на полночь в таймзоне бизнеса
func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// nextDay полночь следующего дня
func nextDay(date time.Time) time.Time {
	return date.AddDate(0, 0, 1)
}
