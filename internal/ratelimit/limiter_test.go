package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestInterval_Allow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewInterval(time.Second, clock.now)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok, "first call is always accepted")

	clock.advance(999 * time.Millisecond)
	ok, _ = l.Allow(ctx, "")
	assert.False(t, ok)

	clock.advance(time.Millisecond)
	ok, _ = l.Allow(ctx, "")
	assert.True(t, ok)

	// Rejected calls do not move the window.
	clock.advance(500 * time.Millisecond)
	ok, _ = l.Allow(ctx, "")
	assert.False(t, ok)
	clock.advance(500 * time.Millisecond)
	ok, _ = l.Allow(ctx, "")
	assert.True(t, ok)
}

func TestInterval_SharedAcrossKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	l := NewInterval(time.Second, clock.now)

	ok, _ := l.Allow(context.Background(), "alice")
	assert.True(t, ok)
	ok, _ = l.Allow(context.Background(), "bob")
	assert.False(t, ok)
}

func TestInterval_DefaultsInterval(t *testing.T) {
	l := NewInterval(0, nil)
	assert.Equal(t, DefaultInterval, l.interval)
}

func TestRedis_Allow(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedis(client, time.Second)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited independently")

	srv.FastForward(time.Second)
	ok, err = l.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_ErrorWhenUnavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	srv.Close()

	ok, err := NewRedis(client, time.Second).Allow(context.Background(), "user-1")
	assert.Error(t, err)
	assert.False(t, ok)
}
