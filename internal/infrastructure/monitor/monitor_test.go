package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sizer int

func (s sizer) Size() (int, error) { return int(s), nil }

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("dial tcp: refused") }

func TestMonitor_Refresh(t *testing.T) {
	m := New(Targets{Postgres: ok, Redis: ok, Buffer: sizer(4)}, 0, nil)
	assert.False(t, m.IsOnline(), "offline until the first probe")

	m.Refresh()
	status := m.GetStatus()
	assert.True(t, m.IsOnline())
	assert.True(t, status.BufferEnabled)
	assert.True(t, status.Buffer)
	assert.Equal(t, 4, status.BufferSize)
	assert.False(t, status.LastCheck.IsZero())
}

func TestMonitor_Degraded(t *testing.T) {
	m := New(Targets{Postgres: down, Redis: ok}, 0, nil)
	m.Refresh()

	status := m.GetStatus()
	assert.False(t, m.IsOnline())
	assert.False(t, status.PostgreSQL)
	assert.True(t, status.Redis)
	assert.False(t, status.BufferEnabled)
}

func TestMonitor_StartStop(t *testing.T) {
	m := New(Targets{Postgres: ok, Redis: ok}, 0, nil)
	m.Start()
	assert.True(t, m.IsOnline())
	m.Stop()
	m.Stop()
}
