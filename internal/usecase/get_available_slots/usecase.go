package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// UseCase use case для расчета свободных слотов встреч
type UseCase struct {
	calendar     CalendarProvider
	policy       domain.BusinessHoursPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendar CalendarProvider, policy domain.BusinessHoursPolicy, logger Logger) *UseCase {
	return &UseCase{
		calendar:     calendar,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Определяем окно дат
	start, end, err := resolveWindow(req, uc.policy, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: from=%s, to=%s",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 3. Один запрос занятости на все окно
	availability, err := uc.calendar.FreeBusy(ctx, start, nextDay(end))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: freebusy query failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// 4. Генерируем слоты по дням и отбрасываем занятые и прошедшие
	slots := make([]domain.DateTimeSlot, 0)
	for date := start; !date.After(end); date = nextDay(date) {
		daySlots, err := generateDaySlots(uc.policy, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		free, err := filterAvailable(daySlots, availability.Busy, now, uc.policy.Location)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to filter slots for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
		}

		slots = append(slots, free...)
	}

	source := availability.Source
	if source == "" {
		source = domain.SlotSourceLive
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots, busy=%d, source=%s", len(slots), len(availability.Busy), source)

	return &Response{
		Slots:       slots,
		GeneratedAt: now.UTC(),
		Source:      source,
	}, nil
}
