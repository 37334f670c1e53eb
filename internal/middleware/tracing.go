package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/todo-api/internal/server"
)

// TracingMiddleware wraps requests in New Relic transactions. Without a
// configured application both middlewares pass requests straight through.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request, or passes through
// when New Relic is disabled.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with client, storage and item
// attributes, and reports server-side failures.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			txn.AddAttribute("storage.driver", tm.server.Config.Database.Driver)
			txn.AddAttribute("request.id", GetRequestID(c))

			if id := c.Param("id"); id != "" {
				txn.AddAttribute("item.id", id)
			}

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err, status)
				// Only server-side failures are reported as errors.
				if status >= 500 {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}
			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}
