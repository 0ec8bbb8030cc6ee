package notifications

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(string, ...interface{}) {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

type recordingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *recordingMetrics) IncNotification(kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[kind+"/"+result]++
}

func (m *recordingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []*mailer.Message
	err  error
}

func (t *fakeTransport) Send(_ context.Context, msg *mailer.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, msg)
	return nil
}

func (t *fakeTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

type sentMessage struct {
	kind Kind
	msg  *mailer.Message
}

type fakeSender struct {
	dispatched []sentMessage
	sendNowErr error
	sentNow    []sentMessage
}

func (s *fakeSender) Dispatch(kind Kind, msg *mailer.Message) error {
	s.dispatched = append(s.dispatched, sentMessage{kind: kind, msg: msg})
	return nil
}

func (s *fakeSender) SendNow(_ context.Context, kind Kind, msg *mailer.Message) error {
	if s.sendNowErr != nil {
		return s.sendNowErr
	}
	s.sentNow = append(s.sentNow, sentMessage{kind: kind, msg: msg})
	return nil
}
