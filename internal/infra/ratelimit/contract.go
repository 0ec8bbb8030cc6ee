package ratelimit

import (
	"context"
	"time"
)

// Decision результат проверки лимита
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration // 0, если запрос разрешен
}

// Limiter ограничивает число запросов на ключ (обычно IP клиента) в окне
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Policy квота запросов на окно
type Policy struct {
	Requests int
	Window   time.Duration
}
