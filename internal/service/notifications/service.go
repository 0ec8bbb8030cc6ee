package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
)

// Sender очередь отправки писем (*Dispatcher)
type Sender interface {
	Dispatch(kind Kind, msg *mailer.Message) error
	SendNow(ctx context.Context, kind Kind, msg *mailer.Message) error
}

// Config адреса и ссылки, подставляемые в письма
type Config struct {
	AdminEmail    string
	PublicBaseURL string
	Timezone      string
}

// Service формирует письма жизненного цикла бронирования.
// Методы бронирований не возвращают ошибок: отправка не должна влиять на основной сценарий.
type Service struct {
	sender   Sender
	renderer *Renderer
	cfg      Config
	log      Logger
}

// NewService создает сервис уведомлений
func NewService(sender Sender, renderer *Renderer, cfg Config, log Logger) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

// BookingCreated уведомляет администратора о новой заявке и клиента о получении
func (s *Service) BookingCreated(b *domain.Booking) {
	view := newBookingView(b)

	if s.cfg.AdminEmail == "" {
		s.log.Warn("BookingCreated: admin email is not configured, skipping admin notification for booking_id=%s", b.ID)
	} else {
		s.dispatch(KindNewBookingAdmin, &mailer.Message{
			To:      []string{s.cfg.AdminEmail},
			ReplyTo: b.Email,
			Subject: fmt.Sprintf("New meeting request: %s", b.CompanyName),
		}, &templateData{Title: "New meeting request", Booking: view})
	}

	s.dispatch(KindBookingReceivedCustomer, &mailer.Message{
		To:      []string{b.Email},
		ReplyTo: s.cfg.AdminEmail,
		Subject: "We have received your meeting request",
	}, &templateData{Title: "Meeting request received", Booking: view})
}

// BookingApproved отправляет клиенту подтвержденный слот и ссылку на встречу
func (s *Service) BookingApproved(b *domain.Booking) {
	if b.ConfirmedSlot == nil {
		s.log.Error("BookingApproved: booking_id=%s has no confirmed slot, notification skipped", b.ID)
		return
	}

	s.dispatch(KindBookingApprovedCustomer, &mailer.Message{
		To:      []string{b.Email},
		ReplyTo: s.cfg.AdminEmail,
		Subject: fmt.Sprintf("Your meeting is confirmed: %s", b.ConfirmedSlot.String()),
	}, &templateData{Title: "Meeting confirmed", Booking: newBookingView(b)})
}

// BookingRejected сообщает клиенту об отказе, с причиной при наличии
func (s *Service) BookingRejected(b *domain.Booking, reason string) {
	s.dispatch(KindBookingRejectedCustomer, &mailer.Message{
		To:      []string{b.Email},
		ReplyTo: s.cfg.AdminEmail,
		Subject: "Update on your meeting request",
	}, &templateData{Title: "Meeting request update", Booking: newBookingView(b), Reason: reason})
}

// InquiryReceived синхронно отправляет обращение администратору
func (s *Service) InquiryReceived(ctx context.Context, inquiry *domain.Inquiry) error {
	if s.cfg.AdminEmail == "" {
		return ErrRecipientMissing
	}

	msg := &mailer.Message{
		To:      []string{s.cfg.AdminEmail},
		ReplyTo: inquiry.Email,
		Subject: fmt.Sprintf("New inquiry (%s): %s", inquiry.Category, inquiry.Company),
	}

	body, err := s.renderer.Render(KindInquiryAdmin, s.withDefaults(&templateData{Title: "New inquiry", Inquiry: inquiry}))
	if err != nil {
		return err
	}
	msg.HTMLBody = body

	return s.sender.SendNow(ctx, KindInquiryAdmin, msg)
}

func (s *Service) dispatch(kind Kind, msg *mailer.Message, data *templateData) {
	body, err := s.renderer.Render(kind, s.withDefaults(data))
	if err != nil {
		s.log.Error("Notification %s not sent: %v", kind, err)
		return
	}
	msg.HTMLBody = body

	// Ошибка уже залогирована диспетчером
	_ = s.sender.Dispatch(kind, msg)
}

func (s *Service) withDefaults(data *templateData) *templateData {
	data.PublicBaseURL = s.cfg.PublicBaseURL
	data.Timezone = s.cfg.Timezone
	if data.Timezone == "" {
		data.Timezone = "UTC"
	}
	return data
}
