package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// resolveWindow вычисляет окно дат запроса; отсутствующие границы берутся из политики
func resolveWindow(req *Request, policy domain.BusinessHoursPolicy, now time.Time) (time.Time, time.Time, error) {
	defaultStart, defaultEnd := policy.DefaultWindow(now)

	start := defaultStart
	if req.From != nil {
		start = dateOnly(*req.From, policy.Location)
	}

	end := defaultEnd
	switch {
	case req.To != nil:
		end = dateOnly(*req.To, policy.Location)
	case req.From != nil:
		end = start.AddDate(0, 0, policy.WindowDays)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	days := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
		if days > domain.MaxWindowDays {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: window must not exceed %d days", ErrInvalidInput, domain.MaxWindowDays)
		}
	}

	return start, end, nil
}
