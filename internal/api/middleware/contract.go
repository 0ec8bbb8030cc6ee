package middleware

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/infra/ratelimit"
)

// RateLimiter лимитер запросов на ключ (ratelimit.MemoryLimiter, RedisLimiter, NoopLimiter)
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// HTTPMetrics метрики HTTP запросов (*metrics.Metrics)
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route, status string, seconds float64)
}

// RateLimitMetrics счетчик отклоненных лимитером запросов (*metrics.Metrics)
type RateLimitMetrics interface {
	IncRateLimited(route string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
