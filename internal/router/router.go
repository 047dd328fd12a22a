package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/peopledash/api/handler"
	"github.com/fastygo/peopledash/internal/middleware"
	"github.com/fastygo/peopledash/internal/telemetry"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Employee  *apiHandler.EmployeeHandler
	Analytics *apiHandler.AnalyticsHandler
	Logs      *apiHandler.LogsHandler
	Health    *apiHandler.HealthHandler
}

// New registers every route. metrics may be nil, in which case /metrics is not served.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, metrics *telemetry.Metrics) *router.Router {
	r := router.New()

	observe := func(route string, h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return middleware.Observe(metrics, route)(h)
	}
	protected := func(route string, h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return observe(route, authMiddleware(h))
	}

	r.GET("/health", handlers.Health.Check)
	if metrics != nil {
		r.GET("/metrics", metrics.Handler())
	}

	// Auth routes
	r.POST("/api/v1/auth/login", observe("auth_login", handlers.Auth.Login))
	r.POST("/api/v1/auth/refresh", observe("auth_refresh", handlers.Auth.Refresh))
	r.POST("/api/v1/auth/logout", protected("auth_logout", handlers.Auth.Logout))

	// Protected routes
	r.GET("/api/v1/employees", protected("employees_list", handlers.Employee.List))
	r.POST("/api/v1/employees", protected("employees_insert", handlers.Employee.Insert))
	r.POST("/api/v1/employees/generate", protected("employees_generate", handlers.Employee.Generate))
	r.GET("/api/v1/employees/export", protected("employees_export", handlers.Employee.Export))
	r.GET("/api/v1/employees/{id}", protected("employees_get", handlers.Employee.Get))
	r.PUT("/api/v1/employees/{id}", protected("employees_update", handlers.Employee.Update))
	r.DELETE("/api/v1/employees/{id}", protected("employees_delete", handlers.Employee.Delete))

	r.GET("/api/v1/analytics", protected("analytics_views", handlers.Analytics.Views))
	r.GET("/api/v1/analytics/{view}", protected("analytics_view", handlers.Analytics.View))

	r.GET("/api/v1/logs", protected("logs", handlers.Logs.Recent))

	return r
}
