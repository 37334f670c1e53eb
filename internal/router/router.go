// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/todo-api/internal/handler"
	"github.com/deppfellow/todo-api/internal/middleware"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/deppfellow/todo-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
//
// The request id, tracing and logger come first so rejected requests
// (rate limit, CORS) are still logged and counted. Recover sits innermost.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	router.JSONSerializer = validation.StrictJSONSerializer{}

	router.Use(
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Metrics.Middleware(),
		mws.Global.RequestLogger(),
	)

	if mws.RateLimit.Enabled() {
		router.Use(mws.RateLimit.Limit())
	}

	router.Use(
		mws.Global.CORS(),
		mws.Global.Secure(),
		mws.Global.Recover(),
	)

	registerSystemRoutes(router, h, mws)
	registerItemRoutes(router, h)

	return router
}
