package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "todo_api"

// MetricsMiddleware records Prometheus request metrics into its own
// registry, served by Handler.
type MetricsMiddleware struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetricsMiddleware() *MetricsMiddleware {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		requests,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsMiddleware{
		registry: registry,
		requests: requests,
		duration: duration,
	}
}

// Middleware observes every request after the rest of the chain ran.
func (m *MetricsMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err, status)
			}

			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsMiddleware) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
