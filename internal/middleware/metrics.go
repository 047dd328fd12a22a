package middleware

import (
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/peopledash/internal/telemetry"
)

// Observe records request count and latency under a fixed route label.
func Observe(metrics *telemetry.Metrics, route string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		if metrics == nil {
			return next
		}
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			metrics.ObserveRequest(route, ctx.Response.StatusCode(), time.Since(start))
		}
	}
}
