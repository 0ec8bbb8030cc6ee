package mailer

import "errors"

var (
	// ErrNotConfigured возвращается, когда SMTP не настроен (production fail closed)
	ErrNotConfigured = errors.New("mailer: transport is not configured")

	// ErrInvalidMessage возвращается для письма с некорректным адресом или без получателей
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSend возвращается при ошибке SMTP-диалога
	ErrSend = errors.New("mailer: failed to send message")

	// ErrAuthUnsupported возвращается, когда заданы учетные данные, а сервер не предлагает AUTH
	ErrAuthUnsupported = errors.New("mailer: server does not support AUTH")
)
