package mailer

import (
	"context"
	"strings"
)

// NoopTransport development-транспорт: письмо только логируется
type NoopTransport struct {
	log Logger
}

func NewNoopTransport(log Logger) *NoopTransport {
	return &NoopTransport{log: log}
}

func (t *NoopTransport) Send(_ context.Context, msg *Message) error {
	t.log.Info("Mailer noop: to=%s, subject=%q", strings.Join(msg.To, ","), SanitizeHeader(msg.Subject))
	return nil
}

// UnconfiguredTransport production без SMTP: каждая отправка завершается ErrNotConfigured
type UnconfiguredTransport struct{}

func NewUnconfiguredTransport() UnconfiguredTransport {
	return UnconfiguredTransport{}
}

func (UnconfiguredTransport) Send(context.Context, *Message) error {
	return ErrNotConfigured
}
