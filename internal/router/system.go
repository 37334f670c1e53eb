package router

import (
	"github.com/deppfellow/todo-api/internal/handler"
	"github.com/deppfellow/todo-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// items API: health, API docs and metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mws *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/metrics", echo.WrapHandler(mws.Metrics.Handler()))
}
