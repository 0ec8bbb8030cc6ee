package ratelimit

import "context"

// NoopLimiter пропускает все запросы (только для development)
type NoopLimiter struct{}

func NewNoopLimiter() NoopLimiter {
	return NoopLimiter{}
}

func (NoopLimiter) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, nil
}
