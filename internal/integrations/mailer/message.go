package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SanitizeHeader убирает CR/LF и управляющие символы, чтобы значение не могло добавить заголовок
func SanitizeHeader(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r == '\r' || r == '\n':
			b.WriteRune(' ')
		case r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ParseAddress разбирает адрес после очистки; строка с переводами строк отклоняется
func ParseAddress(value string) (*mail.Address, error) {
	if strings.ContainsAny(value, "\r\n") {
		return nil, fmt.Errorf("%w: address contains line breaks", ErrInvalidMessage)
	}
	addr, err := mail.ParseAddress(SanitizeHeader(value))
	if err != nil {
		return nil, fmt.Errorf("%w: address %q: %v", ErrInvalidMessage, value, err)
	}
	return addr, nil
}

// BuildMessage собирает RFC 5322 письмо: заголовки очищены, тема в RFC 2047, тело quoted-printable
func BuildMessage(from *mail.Address, msg *Message, now time.Time) ([]byte, []string, error) {
	if len(msg.To) == 0 {
		return nil, nil, fmt.Errorf("%w: no recipients", ErrInvalidMessage)
	}

	recipients := make([]string, 0, len(msg.To))
	toHeader := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		addr, err := ParseAddress(to)
		if err != nil {
			return nil, nil, err
		}
		recipients = append(recipients, addr.Address)
		toHeader = append(toHeader, addr.String())
	}

	var buf bytes.Buffer
	writeHeader(&buf, "From", from.String())
	writeHeader(&buf, "To", strings.Join(toHeader, ", "))
	if msg.ReplyTo != "" {
		replyTo, err := ParseAddress(msg.ReplyTo)
		if err != nil {
			return nil, nil, err
		}
		writeHeader(&buf, "Reply-To", replyTo.String())
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", SanitizeHeader(msg.Subject)))
	writeHeader(&buf, "Date", now.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID(from.Address))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", `text/html; charset="UTF-8"`)
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, nil, fmt.Errorf("%w: encode body: %v", ErrInvalidMessage, err)
	}
	if err := qp.Close(); err != nil {
		return nil, nil, fmt.Errorf("%w: encode body: %v", ErrInvalidMessage, err)
	}

	return buf.Bytes(), recipients, nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func messageID(fromAddress string) string {
	domain := "localhost"
	if at := strings.LastIndex(fromAddress, "@"); at >= 0 && at < len(fromAddress)-1 {
		domain = fromAddress[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
