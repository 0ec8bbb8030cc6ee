package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestMemoryLimiter(policy Policy) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(policy)
	l.now = clock.Now
	return l, clock
}

func TestMemoryLimiter_EleventhRequestRejected(t *testing.T) {
	l, _ := newTestMemoryLimiter(Policy{Requests: 10, Window: time.Hour})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		d, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
	}

	d, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Hour, d.RetryAfter)
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestMemoryLimiter(Policy{Requests: 2, Window: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := l.Allow(ctx, "a")
		assert.True(t, d.Allowed)
	}
	d, _ := l.Allow(ctx, "a")
	assert.False(t, d.Allowed)

	d, _ = l.Allow(ctx, "b")
	assert.True(t, d.Allowed)
}

func TestMemoryLimiter_OldestRequestExpires(t *testing.T) {
	l, clock := newTestMemoryLimiter(Policy{Requests: 10, Window: time.Hour})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		d, _ := l.Allow(ctx, "ip")
		require.True(t, d.Allowed)
		clock.Advance(time.Minute)
	}

	d, _ := l.Allow(ctx, "ip")
	require.False(t, d.Allowed)
	assert.Equal(t, 50*time.Minute, d.RetryAfter)

	clock.Advance(49 * time.Minute)
	d, _ = l.Allow(ctx, "ip")
	require.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	// первый запрос вышел из окна, освободилось ровно одно место
	clock.Advance(time.Minute)
	d, _ = l.Allow(ctx, "ip")
	assert.True(t, d.Allowed)
	d, _ = l.Allow(ctx, "ip")
	assert.False(t, d.Allowed)
}

func TestMemoryLimiter_AtMostQuotaInAnyWindow(t *testing.T) {
	l, clock := newTestMemoryLimiter(Policy{Requests: 10, Window: time.Hour})
	ctx := context.Background()

	var admitted []time.Time
	for i := 0; i < 120; i++ {
		d, err := l.Allow(ctx, "198.51.100.23")
		require.NoError(t, err)
		if d.Allowed {
			admitted = append(admitted, clock.Now())
		}
		clock.Advance(time.Minute)
	}

	for i, start := range admitted {
		inWindow := 0
		for _, at := range admitted[i:] {
			if at.Sub(start) < time.Hour {
				inWindow++
			}
		}
		assert.LessOrEqual(t, inWindow, 10, "window starting at %s", start.Format(time.RFC3339))
	}
	assert.Len(t, admitted, 20)
}

func TestMemoryLimiter_RejectedRequestDoesNotConsume(t *testing.T) {
	l, clock := newTestMemoryLimiter(Policy{Requests: 1, Window: time.Minute})
	ctx := context.Background()

	d, _ := l.Allow(ctx, "ip")
	require.True(t, d.Allowed)

	for i := 0; i < 5; i++ {
		d, _ = l.Allow(ctx, "ip")
		require.False(t, d.Allowed)
	}

	clock.Advance(61 * time.Second)
	d, _ = l.Allow(ctx, "ip")
	assert.True(t, d.Allowed)
}

func TestMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	l, clock := newTestMemoryLimiter(Policy{Requests: 10, Window: time.Hour})
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	_, _ = l.Allow(ctx, "b")
	assert.Equal(t, 2, l.size())

	clock.Advance(2 * time.Hour)
	_, _ = l.Allow(ctx, "c")
	assert.Equal(t, 1, l.size())
}

func TestMemoryLimiter_ZeroQuotaAllowsAll(t *testing.T) {
	l, _ := newTestMemoryLimiter(Policy{Requests: 0, Window: time.Hour})
	d, err := l.Allow(context.Background(), "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestNoopLimiter(t *testing.T) {
	l := NewNoopLimiter()
	for i := 0; i < 100; i++ {
		d, err := l.Allow(context.Background(), "ip")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}
}
