package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	engine "github.com/fastygo/peopledash/internal/analytics"
	"github.com/fastygo/peopledash/pkg/httpcontext"
	"github.com/fastygo/peopledash/usecase"
	analyticsUC "github.com/fastygo/peopledash/usecase/analytics"
)

type AnalyticsHandler struct {
	baseHandler
	dispatcher *usecase.Dispatcher
}

func NewAnalyticsHandler(dispatcher *usecase.Dispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary List available analytics views
// @Tags analytics
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) Views(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.dispatcher.Queries())
}

// @Summary Fetch one aggregate view
// @Tags analytics
// @Param view path string true "department-stats, salary-distribution, age-distribution, gender-distribution, tenure-distribution or top-performers"
// @Param n query int false "top performers length"
// @Router /api/v1/analytics/{view} [get]
func (h *AnalyticsHandler) View(ctx *fasthttp.RequestCtx) {
	view, _ := ctx.UserValue("view").(string)

	var params interface{}
	if view == analyticsUC.QueryTopPerformers {
		params = queryInt(ctx.QueryArgs(), "n", engine.DefaultTopPerformers)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.dispatcher.ExecuteQuery(stdCtx, view, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, data)
}
