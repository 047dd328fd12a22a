package httpcontext

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestAttach_DeadlineAndMetadata(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetUserAgent("dashboard/1.0")
	ctx.Request.Header.Set("X-Request-ID", "req-42")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	deadline, ok := stdCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
	assert.Equal(t, "dashboard/1.0", stdCtx.Value(KeyUserAgent))
	assert.Equal(t, "req-42", string(ctx.Response.Header.Peek("X-Request-ID")))
}

func TestRequestID_ReplacesUnsafeValues(t *testing.T) {
	for _, header := range []string{"", "   ", "two words", strings.Repeat("a", maxRequestIDLength+1)} {
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set("X-Request-ID", header)
		_, err := uuid.Parse(getRequestID(&ctx))
		assert.NoError(t, err, "header %q", header)
	}

	_, err := uuid.Parse(getRequestID(nil))
	assert.NoError(t, err)
}

func TestNewAdapter_DefaultTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewAdapter(0).timeout)
}
