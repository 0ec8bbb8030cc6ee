package submit_inquiry

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// UseCase use case для отправки обращения с формы обратной связи.
// Обращение не сохраняется, только пересылается администратору.
type UseCase struct {
	notifier Notifier
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		notifier: notifier,
		logger:   logger,
	}
}

// Execute выполняет use case отправки обращения
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	inquiry := &domain.Inquiry{
		Company:  strings.TrimSpace(req.Company),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Category: strings.TrimSpace(req.Category),
		Message:  domain.SanitizeText(req.Message),
	}

	uc.logger.Info("SubmitInquiry: company=%q, category=%q, email=%s", inquiry.Company, inquiry.Category, inquiry.Email)

	// 1. Валидация
	if err := validateInquiry(inquiry); err != nil {
		uc.logger.Warn("SubmitInquiry: validation failed: %v", err)
		return err
	}

	// 2. Отправляем письмо администратору и дожидаемся результата
	if err := uc.notifier.InquiryReceived(ctx, inquiry); err != nil {
		uc.logger.Error("SubmitInquiry: failed to deliver inquiry from %s: %v", inquiry.Email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	uc.logger.Info("SubmitInquiry: inquiry from %s delivered", inquiry.Email)
	return nil
}

func validateInquiry(i *domain.Inquiry) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{name: "company", value: i.Company, max: domain.MaxNameLength},
		{name: "name", value: i.Name, max: domain.MaxNameLength},
		{name: "email", value: i.Email, max: domain.MaxEmailLength},
		{name: "category", value: i.Category, max: domain.MaxCategoryLength},
		{name: "message", value: i.Message, max: domain.MaxMessageLength},
	}

	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, f.name, f.max)
		}
	}

	if !strings.Contains(i.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	return nil
}
