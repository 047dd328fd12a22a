package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/telemetry"
	authUC "github.com/fastygo/peopledash/usecase/auth"
)

type tokenTable map[string]string

func (t tokenTable) Authenticate(_ context.Context, token string) (*authUC.Claims, error) {
	if user, ok := t[token]; ok {
		return &authUC.Claims{UserID: user}, nil
	}
	return nil, domain.ErrUnauthorized
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth(tokenTable{"good": "analyst"}, 0, nil)
	var seenUser string
	handler := mw(func(ctx *fasthttp.RequestCtx) {
		seenUser = string(ctx.Request.Header.Peek(HeaderUserID))
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
		user   string
	}{
		{name: "missing", header: "", status: fasthttp.StatusUnauthorized},
		{name: "unknown", header: "Bearer bad", status: fasthttp.StatusUnauthorized},
		{name: "bearer", header: "Bearer good", status: fasthttp.StatusOK, user: "analyst"},
		{name: "raw token", header: "good", status: fasthttp.StatusOK, user: "analyst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser = ""
			var ctx fasthttp.RequestCtx
			if tt.header != "" {
				ctx.Request.Header.Set("Authorization", tt.header)
			}
			handler(&ctx)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			assert.Equal(t, tt.user, seenUser)
		})
	}
}

func TestObserve(t *testing.T) {
	metrics := telemetry.New("mw")
	handler := Observe(metrics, "/health")(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})

	var ctx fasthttp.RequestCtx
	handler(&ctx)
	handler(&ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("/health", "503")))
}
