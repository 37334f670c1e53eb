package middleware

import (
	"github.com/deppfellow/todo-api/internal/logger"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the Echo context key of the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware that attaches a logger carrying
// request_id, method, route, ip and, when tracing is on, trace.id/span.id.
// The logger is stored on the Echo context and, for code below the
// handlers, on the request context where zerolog.Ctx finds it.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template, e.g. "/items/:id"
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			c.SetRequest(c.Request().WithContext(contextLogger.WithContext(c.Request().Context())))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
