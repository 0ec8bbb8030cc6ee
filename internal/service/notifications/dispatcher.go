package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

type job struct {
	kind Kind
	msg  *mailer.Message
}

// DispatcherConfig параметры фоновой отправки
type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
	// MaxPerSecond ограничивает частоту обращений к почтовому серверу, 0 без ограничения
	MaxPerSecond float64
}

// Dispatcher фоновая отправка писем: ограниченная очередь и пул воркеров.
// Ошибки отправки логируются и считаются, повторных попыток нет.
type Dispatcher struct {
	transport   Transport
	queue       chan job
	sendTimeout time.Duration
	throttle    *rate.Limiter
	log         Logger
	metrics     Metrics

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер и запускает воркеры
func NewDispatcher(transport Transport, cfg DispatcherConfig, log Logger, metrics Metrics) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}

	d := &Dispatcher{
		transport:   transport,
		queue:       make(chan job, cfg.QueueSize),
		sendTimeout: cfg.SendTimeout,
		log:         log,
		metrics:     metrics,
	}
	if cfg.MaxPerSecond > 0 {
		d.throttle = rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), 1)
	}

	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Dispatch ставит письмо в очередь и сразу возвращает управление.
// Переполненная очередь или остановленный диспетчер: письмо отбрасывается с записью в лог.
func (d *Dispatcher) Dispatch(kind Kind, msg *mailer.Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.log.Error("Notification %s dropped: dispatcher stopped, to=%s", kind, recipients(msg))
		d.record(kind, resultDropped)
		return ErrStopped
	}

	select {
	case d.queue <- job{kind: kind, msg: msg}:
		return nil
	default:
		d.log.Error("Notification %s dropped: queue is full, to=%s", kind, recipients(msg))
		d.record(kind, resultDropped)
		return ErrQueueFull
	}
}

// SendNow отправляет письмо синхронно (используется формой обратной связи)
func (d *Dispatcher) SendNow(ctx context.Context, kind Kind, msg *mailer.Message) error {
	if err := d.send(ctx, kind, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// Stop прекращает прием писем и дожидается отправки очереди либо отмены ctx
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notifications: stop: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		_ = d.send(context.Background(), j.kind, j.msg)
	}
}

func (d *Dispatcher) send(ctx context.Context, kind Kind, msg *mailer.Message) (err error) {
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sending: %v", r)
		}
		if err != nil {
			d.log.Error("Notification %s failed: to=%s, error=%v", kind, recipients(msg), err)
			d.record(kind, resultFailed)
			return
		}
		d.log.Info("Notification %s sent: to=%s", kind, recipients(msg))
		d.record(kind, resultSent)
	}()

	if d.throttle != nil {
		if err := d.throttle.Wait(ctx); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}

	return d.transport.Send(ctx, msg)
}

func (d *Dispatcher) record(kind Kind, result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(string(kind), result)
	}
}

func recipients(msg *mailer.Message) string {
	if msg == nil {
		return ""
	}
	return strings.Join(msg.To, ",")
}
