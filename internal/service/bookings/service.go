package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/bookings/models"
)

// Service сервис административного доступа к бронированиям
type Service struct {
	bookingRepo BookingRepository
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает список бронирований, новые первыми.
// Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.BookingListResponse, error) {
	var filter domain.BookingsFilter
	if status != nil && *status != "" {
		parsed, err := domain.ParseBookingStatus(*status)
		if err != nil {
			s.logger.Warn("List: invalid status filter=%q", *status)
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *status)
		}
		filter.Status = &parsed
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookings(bookings), nil
}

// Cancel отменяет бронирование в статусе pending (без уведомления клиента)
func (s *Service) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	status := domain.StatusCancelled
	booking, err := s.bookingRepo.UpdateIfStatus(ctx, id, domain.StatusPending, domain.BookingPatch{Status: &status})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("Cancel: booking id=%s is not pending", id)
			return nil, ErrAlreadyProcessed
		default:
			s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	if s.metrics != nil {
		s.metrics.IncBookingTransition(string(domain.StatusCancelled))
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование (физическое удаление)
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}
