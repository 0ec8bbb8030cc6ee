package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"
)

const implicitTLSPort = 465

// SMTPConfig параметры SMTP-сервера
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPTransport отправка писем через SMTP: STARTTLS, если сервер его предлагает, неявный TLS на 465 порту
type SMTPTransport struct {
	cfg  SMTPConfig
	from *mail.Address
	now  func() time.Time
}

// NewSMTPTransport создает транспорт; адрес отправителя проверяется сразу
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, ErrNotConfigured
	}

	from, err := ParseAddress(cfg.From)
	if err != nil {
		return nil, err
	}
	if cfg.FromName != "" {
		from.Name = SanitizeHeader(cfg.FromName)
	}

	return &SMTPTransport{cfg: cfg, from: from, now: time.Now}, nil
}

// Send отправляет письмо в рамках одного SMTP-соединения
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	data, recipients, err := BuildMessage(t.from, msg, t.now())
	if err != nil {
		return err
	}

	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	conn, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSend, t.addr(), err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		return fmt.Errorf("%w: handshake: %v", ErrSend, err)
	}
	defer client.Close()

	if t.cfg.Port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
				return fmt.Errorf("%w: starttls: %v", ErrSend, err)
			}
		}
	}

	// Учетные данные заданы: анонимная отправка недопустима
	if t.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); !ok {
			return fmt.Errorf("%w: %w", ErrSend, ErrAuthUnsupported)
		}
		auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSend, err)
		}
	}

	if err := client.Mail(t.from.Address); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrSend, err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%w: RCPT TO %s: %v", ErrSend, rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrSend, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: write body: %v", ErrSend, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: finish DATA: %v", ErrSend, err)
	}

	return client.Quit()
}

func (t *SMTPTransport) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{}
	if t.cfg.Port == implicitTLSPort {
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config:    &tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12},
		}
		return tlsDialer.DialContext(ctx, "tcp", t.addr())
	}
	return dialer.DialContext(ctx, "tcp", t.addr())
}

func (t *SMTPTransport) addr() string {
	return net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
}
