package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/api/transport"
	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/export"
	"github.com/fastygo/peopledash/pkg/httpcontext"
	"github.com/fastygo/peopledash/repository"
	employeeUC "github.com/fastygo/peopledash/usecase/employee"
)

type EmployeeHandler struct {
	baseHandler
	uc           *employeeUC.UseCase
	defaultCount int
}

func NewEmployeeHandler(uc *employeeUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, defaultCount int) *EmployeeHandler {
	return &EmployeeHandler{
		baseHandler:  newBaseHandler(adapter, logger),
		uc:           uc,
		defaultCount: defaultCount,
	}
}

// @Summary List employees, newest first
// @Tags employees
// @Param page query int false "page number, from 1"
// @Param pageSize query int false "page size, 1-100"
// @Param search query string false "matches name, position or department"
// @Param department query string false "exact department"
// @Param position query string false "exact position"
// @Param gender query string false "exact gender"
// @Router /api/v1/employees [get]
func (h *EmployeeHandler) List(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter := repository.EmployeeFilter{
		Page:       queryInt(args, "page", 1),
		PageSize:   queryInt(args, "pageSize", repository.DefaultPageSize),
		Search:     string(args.Peek("search")),
		Department: string(args.Peek("department")),
		Position:   string(args.Peek("position")),
		Gender:     string(args.Peek("gender")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewPage(page))
}

// @Summary Fetch one employee
// @Tags employees
// @Router /api/v1/employees/{id} [get]
func (h *EmployeeHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	employee, err := h.uc.Get(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, employee)
}

// @Summary Replace one employee
// @Tags employees
// @Router /api/v1/employees/{id} [put]
func (h *EmployeeHandler) Update(ctx *fasthttp.RequestCtx) {
	var employee domain.Employee
	if err := json.Unmarshal(ctx.PostBody(), &employee); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, pathID(ctx), employee)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete one employee
// @Tags employees
// @Router /api/v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}

// @Summary Insert a batch of employees
// @Description Responds 202 when the store is down and the batch was buffered for replay.
// @Tags employees
// @Router /api/v1/employees [post]
func (h *EmployeeHandler) Insert(ctx *fasthttp.RequestCtx) {
	var req transport.InsertRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.Employees) == 0 {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Insert(stdCtx, req.Employees)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	status := http.StatusCreated
	if result.Buffered {
		status = http.StatusAccepted
	}
	h.respondSuccess(ctx, status, result)
}

// @Summary Generate and store synthetic employees
// @Tags employees
// @Router /api/v1/employees/generate [post]
func (h *EmployeeHandler) Generate(ctx *fasthttp.RequestCtx) {
	req := transport.GenerateRequest{Count: h.defaultCount}
	if body := bytes.TrimSpace(ctx.PostBody()); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Generate(stdCtx, req.Count, req.Seed)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	status := http.StatusCreated
	if result.Buffered {
		status = http.StatusAccepted
	}
	h.respondSuccess(ctx, status, result)
}

// @Summary Download every employee as CSV
// @Tags employees
// @Router /api/v1/employees/export [get]
func (h *EmployeeHandler) Export(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var buf bytes.Buffer
	n, err := h.uc.Export(stdCtx, &buf)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.log(stdCtx).Info("employees exported", zap.Int("count", n))
	ctx.Response.Header.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(buf.Bytes())
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func queryInt(args *fasthttp.Args, key string, fallback int) int {
	raw := args.Peek(key)
	if len(raw) == 0 {
		return fallback
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return fallback
	}
	return v
}

