package reject_booking

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

// UseCase use case для отклонения заявки
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

// Execute выполняет use case отклонения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectBooking: booking_id=%s", req.BookingID)

	// 1. Очищаем и проверяем причину
	reason := domain.SanitizeText(ptr.Value(req.Reason))
	if utf8.RuneCountInString(reason) > domain.MaxRejectReasonLength {
		uc.logger.Warn("RejectBooking: reason too long for booking id=%s", req.BookingID)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectReasonLength)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RejectBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RejectBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsPending() {
		uc.logger.Warn("RejectBooking: booking id=%s already processed, status=%s", booking.ID, booking.Status)
		return nil, ErrAlreadyProcessed
	}

	// 3. Переводим в rejected, причина сохраняется как заметка администратора
	status := domain.StatusRejected
	updated, err := uc.bookingRepo.UpdateIfStatus(ctx, booking.ID, domain.StatusPending, domain.BookingPatch{
		Status:     &status,
		AdminNotes: ptr.NilIfEmpty(reason),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			uc.logger.Warn("RejectBooking: booking id=%s processed concurrently", booking.ID)
			return nil, ErrAlreadyProcessed
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("RejectBooking: booking id=%s deleted concurrently", booking.ID)
			return nil, ErrBookingNotFound
		default:
			uc.logger.Error("RejectBooking: failed to update booking id=%s: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingTransition(string(domain.StatusRejected))
	}

	uc.logger.Info("RejectBooking: booking id=%s rejected", updated.ID)

	// 4. Письмо клиенту
	uc.notifier.BookingRejected(updated, reason)

	return &Response{Booking: updated}, nil
}
