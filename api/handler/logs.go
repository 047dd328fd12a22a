package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/pkg/httpcontext"
	"github.com/fastygo/peopledash/pkg/logger"
)

type LogsHandler struct {
	baseHandler
	ring *logger.Ring
}

func NewLogsHandler(ring *logger.Ring, adapter *httpcontext.Adapter, log *zap.Logger) *LogsHandler {
	return &LogsHandler{
		baseHandler: newBaseHandler(adapter, log),
		ring:        ring,
	}
}

// @Summary Recent log entries, newest first
// @Tags logs
// @Param limit query int false "max entries"
// @Router /api/v1/logs [get]
func (h *LogsHandler) Recent(ctx *fasthttp.RequestCtx) {
	limit := queryInt(ctx.QueryArgs(), "limit", 100)
	h.respondSuccess(ctx, http.StatusOK, h.ring.Recent(limit))
}
