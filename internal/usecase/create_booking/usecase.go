package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// UseCase use case для создания заявки на встречу
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier Notifier, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Уведомления отправляются в фоне и не влияют на результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация входных данных
	req = normalizeRequest(req)

	uc.logger.Info("CreateBooking: company=%q, email=%s, slots=%d", req.CompanyName, req.Email, len(req.PreferredSlots))

	// 2. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем заявку в статусе pending
	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		CompanyName:    req.CompanyName,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		Message:        req.Message,
		PreferredSlots: req.PreferredSlots,
		Status:         domain.StatusPending,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingTransition(string(domain.StatusPending))
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 4. Уведомляем администратора и клиента
	uc.notifier.BookingCreated(created)

	return &Response{Booking: created}, nil
}
