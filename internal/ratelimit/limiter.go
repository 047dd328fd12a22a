// Package ratelimit throttles facade calls. One limiter is built at startup and injected
// into every caller that shares the budget.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

// DefaultInterval is the minimum gap between two accepted calls.
const DefaultInterval = time.Second

// Limiter decides whether a call may proceed. key scopes the budget; implementations may
// ignore it.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Interval accepts a call only when the previously accepted call is at least interval old.
// It keeps a single process-wide timestamp that starts at zero.
type Interval struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewInterval builds an Interval limiter. now defaults to time.Now.
func NewInterval(interval time.Duration, now func() time.Time) *Interval {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Interval{interval: interval, now: now}
}

func (l *Interval) Allow(_ context.Context, _ string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.now()
	if !l.last.IsZero() && current.Sub(l.last) < l.interval {
		return false, nil
	}
	l.last = current
	return true, nil
}

// Redis enforces the same rule per key across instances with SET NX PX.
type Redis struct {
	client   *goRedis.Client
	prefix   string
	interval time.Duration
}

// NewRedis builds a Redis-backed limiter.
func NewRedis(client *goRedis.Client, interval time.Duration) *Redis {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Redis{
		client:   client,
		prefix:   "ratelimit:",
		interval: interval,
	}
}

func (l *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		key = "global"
	}
	ok, err := l.client.SetNX(ctx, fmt.Sprintf("%s%s", l.prefix, key), time.Now().UnixMilli(), l.interval).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Nop accepts every call.
type Nop struct{}

func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }

var (
	_ Limiter = (*Interval)(nil)
	_ Limiter = (*Redis)(nil)
	_ Limiter = Nop{}
)
