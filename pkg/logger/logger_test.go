package logger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRing_KeepsNewestFirst(t *testing.T) {
	ring := NewRing(3)
	log := zap.New(ring.Core(zapcore.DebugLevel))

	for i := 0; i < 5; i++ {
		log.Info(fmt.Sprintf("msg-%d", i), zap.Int("i", i))
	}

	recent := ring.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "msg-4", recent[0].Message)
	assert.Equal(t, "msg-2", recent[2].Message)
	assert.EqualValues(t, 4, recent[0].Fields["i"])

	assert.Len(t, ring.Recent(2), 2)
	assert.Len(t, ring.Recent(50), 3)
}

func TestRing_PartiallyFilled(t *testing.T) {
	ring := NewRing(0)
	log := zap.New(ring.Core(zapcore.WarnLevel))

	log.Info("ignored")
	log.Warn("kept")

	recent := ring.Recent(10)
	require.Len(t, recent, 1)
	assert.Equal(t, "warn", recent[0].Level)
	assert.Empty(t, NewRing(5).Recent(5))
}

func TestRing_ContextFields(t *testing.T) {
	ring := NewRing(10)
	base := zap.New(ring.Core(zapcore.InfoLevel))

	ctx := ContextWithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).With(zap.String("component", "api")).Info("handled")

	recent := ring.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "req-123", recent[0].Fields["request_id"])
	assert.Equal(t, "api", recent[0].Fields["component"])
}

func TestNew_TeesIntoRing(t *testing.T) {
	ring := NewRing(10)
	log, err := New(Config{Level: "debug", Encoding: "console", Ring: ring})
	require.NoError(t, err)

	log.Debug("booted")
	recent := ring.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "booted", recent[0].Message)
	assert.NotEmpty(t, recent[0].Caller)
}
