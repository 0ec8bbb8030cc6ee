package approve_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

// UseCase use case для одобрения заявки: встреча в календаре, смена статуса, письмо клиенту
type UseCase struct {
	bookingRepo BookingRepository
	calendar    CalendarProvider
	notifier    Notifier
	policy      domain.BusinessHoursPolicy
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	calendar CalendarProvider,
	notifier Notifier,
	policy domain.BusinessHoursPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		calendar:    calendar,
		notifier:    notifier,
		policy:      policy,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case одобрения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveBooking: booking_id=%s, slot_index=%d", req.BookingID, req.SelectedSlotIndex)

	// 1. Валидация входных данных
	notes, err := normalizeNotes(req.AdminNotes)
	if err != nil {
		uc.logger.Warn("ApproveBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ApproveBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ApproveBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Одобрить можно только pending
	if !booking.IsPending() {
		uc.logger.Warn("ApproveBooking: booking id=%s already processed, status=%s", booking.ID, booking.Status)
		return nil, ErrAlreadyProcessed
	}

	// 4. Выбранный слот
	slot, ok := booking.SlotAt(req.SelectedSlotIndex)
	if !ok {
		uc.logger.Warn("ApproveBooking: slot index %d out of range for booking id=%s (slots=%d)",
			req.SelectedSlotIndex, booking.ID, len(booking.PreferredSlots))
		return nil, ErrInvalidSlot
	}

	start, end, err := slot.Interval(uc.policy.Location)
	if err != nil {
		uc.logger.Error("ApproveBooking: stored slot %s of booking id=%s is invalid: %v", slot, booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 5. Создаем встречу с видеоконференцией
	event, err := uc.calendar.CreateEvent(ctx, &calendar.EventRequest{
		Summary:        fmt.Sprintf("Meeting with %s", booking.CompanyName),
		Description:    eventDescription(booking, notes),
		Start:          start,
		End:            end,
		TimeZone:       uc.policy.TimezoneName(),
		AttendeeEmails: []string{booking.Email},
		RequestID:      booking.ID,
	})
	if err != nil {
		uc.logger.Error("ApproveBooking: failed to create calendar event for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// 6. Переводим в approved, только если заявка все еще pending
	status := domain.StatusApproved
	updated, err := uc.bookingRepo.UpdateIfStatus(ctx, booking.ID, domain.StatusPending, domain.BookingPatch{
		Status:          &status,
		ConfirmedSlot:   &slot,
		MeetLink:        ptr.NilIfEmpty(event.MeetLink),
		CalendarEventID: ptr.NilIfEmpty(event.ID),
		AdminNotes:      notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			uc.logger.Warn("ApproveBooking: booking id=%s processed concurrently, calendar event %s left unattached",
				booking.ID, event.ID)
			return nil, ErrAlreadyProcessed
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("ApproveBooking: booking id=%s deleted concurrently", booking.ID)
			return nil, ErrBookingNotFound
		default:
			uc.logger.Error("ApproveBooking: failed to update booking id=%s: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingTransition(string(domain.StatusApproved))
	}

	uc.logger.Info("ApproveBooking: booking id=%s approved for %s, event_id=%s", updated.ID, slot, event.ID)

	// 7. Письмо клиенту со слотом и ссылкой
	uc.notifier.BookingApproved(updated)

	return &Response{Booking: updated}, nil
}

// normalizeNotes очищает заметки администратора; пустые заметки не сохраняются
func normalizeNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	cleaned := domain.SanitizeText(*notes)
	if utf8.RuneCountInString(cleaned) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}
	return ptr.NilIfEmpty(cleaned), nil
}

// eventDescription текст описания встречи в календаре
func eventDescription(b *domain.Booking, notes *string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s\n", b.CompanyName)
	fmt.Fprintf(&sb, "Contact: %s <%s>\n", b.ContactName, b.Email)
	if b.Phone != nil {
		fmt.Fprintf(&sb, "Phone: %s\n", *b.Phone)
	}
	if b.Message != nil {
		fmt.Fprintf(&sb, "\n%s\n", *b.Message)
	}
	if notes != nil {
		fmt.Fprintf(&sb, "\nNotes: %s\n", *notes)
	}
	fmt.Fprintf(&sb, "\nBooking ID: %s", b.ID)
	return sb.String()
}
