package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStatus возвращается при разборе неизвестного статуса
	ErrInvalidStatus = errors.New("invalid booking status")
	// ErrInvalidTransition возвращается при смене статуса в обход конечного автомата
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking заявка на встречу с командой продаж
type Booking struct {
	ID             string
	CompanyName    string
	ContactName    string
	Email          string
	Phone          *string
	Message        *string
	PreferredSlots []DateTimeSlot // от 1 до MaxPreferredSlots, в порядке предпочтения
	Status         BookingStatus

	// Заполняются только при одобрении
	ConfirmedSlot   *DateTimeSlot
	MeetLink        *string
	CalendarEventID *string

	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the booking is waiting for an admin decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// SlotAt возвращает предпочтительный слот по индексу
func (b *Booking) SlotAt(index int) (DateTimeSlot, bool) {
	if index < 0 || index >= len(b.PreferredSlots) {
		return DateTimeSlot{}, false
	}
	return b.PreferredSlots[index], true
}

// TruncatePreferredSlots оставляет не более MaxPreferredSlots слотов
func (b *Booking) TruncatePreferredSlots() {
	if len(b.PreferredSlots) > MaxPreferredSlots {
		b.PreferredSlots = b.PreferredSlots[:MaxPreferredSlots]
	}
}

// Clone возвращает глубокую копию, чтобы вызывающий код не мог изменить хранимую запись
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}

	c := *b
	c.PreferredSlots = append([]DateTimeSlot(nil), b.PreferredSlots...)
	c.Phone = cloneString(b.Phone)
	c.Message = cloneString(b.Message)
	c.MeetLink = cloneString(b.MeetLink)
	c.CalendarEventID = cloneString(b.CalendarEventID)
	c.AdminNotes = cloneString(b.AdminNotes)
	if b.ConfirmedSlot != nil {
		slot := *b.ConfirmedSlot
		c.ConfirmedSlot = &slot
	}
	return &c
}

// IsTerminal returns true for statuses without outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo проверяет переход конечного автомата: pending -> approved | rejected | cancelled
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(status string) (BookingStatus, error) {
	s := BookingStatus(status)
	for _, valid := range AllStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	Status *BookingStatus // nil - все статусы
}

// BookingPatch частичное обновление бронирования; nil-поля не меняются
type BookingPatch struct {
	Status          *BookingStatus
	ConfirmedSlot   *DateTimeSlot
	MeetLink        *string
	CalendarEventID *string
	AdminNotes      *string
}

// Apply применяет изменения к записи.
// ID и CreatedAt не меняются никогда; при уходе из approved подтвержденный слот и ссылка сбрасываются.
// Смена статуса разрешена только по CanTransitionTo, иначе запись не меняется и возвращается ErrInvalidTransition.
func (p BookingPatch) Apply(b *Booking, now time.Time) error {
	if p.Status != nil && *p.Status != b.Status {
		if !b.Status.CanTransitionTo(*p.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, *p.Status)
		}
		b.Status = *p.Status
	}
	if p.ConfirmedSlot != nil {
		slot := *p.ConfirmedSlot
		b.ConfirmedSlot = &slot
	}
	if p.MeetLink != nil {
		b.MeetLink = cloneString(p.MeetLink)
	}
	if p.CalendarEventID != nil {
		b.CalendarEventID = cloneString(p.CalendarEventID)
	}
	if p.AdminNotes != nil {
		b.AdminNotes = cloneString(p.AdminNotes)
	}

	if b.Status != StatusApproved {
		b.ConfirmedSlot = nil
		b.MeetLink = nil
		b.CalendarEventID = nil
	}

	b.UpdatedAt = now
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
