package middleware

import (
	"math"
	"time"

	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// rateLimitExpiry is how long an idle client's bucket is kept.
const rateLimitExpiry = 3 * time.Minute

// RateLimitMiddleware enforces a per-IP request rate and reports denials.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether a positive rate is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit > 0
}

// Limit returns Echo's rate limiter backed by an in-memory store,
// allowing server.rate_limit requests per second per client IP.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	limit := r.server.Config.Server.RateLimit

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     int(math.Ceil(limit)),
			ExpiresIn: rateLimitExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewTooManyRequestsError("Could not identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
