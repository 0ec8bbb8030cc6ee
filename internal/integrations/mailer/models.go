package mailer

import "context"

// Message письмо в формате HTML
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Transport отправка готового письма
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
