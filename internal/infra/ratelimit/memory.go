package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter скользящее окно на ключ: хранит время принятых запросов за последние window.
// В любом интервале длиной window принимается не больше Requests запросов.
type MemoryLimiter struct {
	policy Policy

	mu          sync.Mutex
	visitors    map[string][]time.Time
	lastCleanup time.Time
	now         func() time.Time
}

// NewMemoryLimiter создает лимитер в памяти процесса
func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		policy:   policy,
		visitors: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow проверяет квоту ключа и при успехе записывает запрос в окно.
// Отклоненные запросы не учитываются.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	if l.policy.Requests <= 0 {
		return Decision{Allowed: true}, nil
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdle(now)

	hits := l.trim(l.visitors[key], now)
	if len(hits) >= l.policy.Requests {
		l.visitors[key] = hits
		return Decision{Allowed: false, RetryAfter: hits[0].Add(l.policy.Window).Sub(now)}, nil
	}

	l.visitors[key] = append(hits, now)
	return Decision{Allowed: true}, nil
}

// trim отбрасывает отметки, вышедшие за окно
func (l *MemoryLimiter) trim(hits []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.policy.Window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}

// evictIdle удаляет ключи, последний запрос которых старше окна
func (l *MemoryLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastCleanup) < l.policy.Window {
		return
	}
	for key, hits := range l.visitors {
		if len(hits) == 0 || now.Sub(hits[len(hits)-1]) >= l.policy.Window {
			delete(l.visitors, key)
		}
	}
	l.lastCleanup = now
}

// size число отслеживаемых ключей
func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
