package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

// normalizeRequest обрезает пробелы, приводит email к нижнему регистру
// и оставляет не более трех предпочтительных слотов
func normalizeRequest(req *Request) *Request {
	normalized := &Request{
		CompanyName: strings.TrimSpace(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       ptr.NilIfEmpty(strings.TrimSpace(ptr.Value(req.Phone))),
		Message:     ptr.NilIfEmpty(strings.TrimSpace(ptr.Value(req.Message))),
	}

	slots := req.PreferredSlots
	if len(slots) > domain.MaxPreferredSlots {
		slots = slots[:domain.MaxPreferredSlots]
	}
	normalized.PreferredSlots = append([]domain.DateTimeSlot(nil), slots...)

	return normalized
}

// validateRequest валидирует нормализованный запрос
func validateRequest(req *Request) error {
	if req.CompanyName == "" {
		return fmt.Errorf("%w: companyName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CompanyName) > domain.MaxNameLength {
		return fmt.Errorf("%w: companyName must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.ContactName == "" {
		return fmt.Errorf("%w: contactName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ContactName) > domain.MaxNameLength {
		return fmt.Errorf("%w: contactName must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(req.Email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}

	if req.Phone != nil && utf8.RuneCountInString(*req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}
	if req.Message != nil && utf8.RuneCountInString(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	if len(req.PreferredSlots) == 0 {
		return fmt.Errorf("%w: at least one preferred slot is required", ErrInvalidInput)
	}
	for i, slot := range req.PreferredSlots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: preferredSlots[%d]: %v", ErrInvalidInput, i, err)
		}
	}

	return nil
}
