package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter фиксированное окно: INCR счетчика ключа окна с TTL, равным окну.
// Подходит для нескольких инстансов сервиса за балансировщиком.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	policy Policy
	now    func() time.Time
	incr   func(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// NewRedisLimiter создает лимитер поверх redis
func NewRedisLimiter(client redis.Cmdable, prefix string, policy Policy) *RedisLimiter {
	l := &RedisLimiter{
		client: client,
		prefix: prefix,
		policy: policy,
		now:    time.Now,
	}
	l.incr = l.incrWindow
	return l
}

// Allow увеличивает счетчик текущего окна и сравнивает с квотой
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.policy.Requests <= 0 {
		return Decision{Allowed: true}, nil
	}

	now := l.now().UTC()
	windowKey, retryAfter := l.windowKey(key, now)

	count, err := l.incr(ctx, windowKey, l.policy.Window+time.Second)
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis increment %s: %w", windowKey, err)
	}

	if count > int64(l.policy.Requests) {
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}

	return Decision{Allowed: true}, nil
}

// incrWindow атомарно увеличивает счетчик окна и продлевает его TTL
func (l *RedisLimiter) incrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// windowKey ключ окна и время до его окончания
func (l *RedisLimiter) windowKey(key string, now time.Time) (string, time.Duration) {
	windowSec := int64(l.policy.Window / time.Second)
	if windowSec <= 0 {
		windowSec = 1
	}

	windowID := now.Unix() / windowSec
	nextWindowStart := time.Unix((windowID+1)*windowSec, 0)

	return fmt.Sprintf("%s:%s:%d", l.prefix, key, windowID), nextWindowStart.Sub(now)
}
