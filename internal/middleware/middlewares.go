package middleware

import (
	"github.com/deppfellow/todo-api/internal/server"
)

// Middlewares groups every middleware component so the router builds them
// once.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing is a no-op when New Relic is not configured.
	Tracing *TracingMiddleware

	RateLimit *RateLimitMiddleware

	Metrics *MetricsMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(),
	}
}
