package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/todo-api/internal/middleware"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness/readiness endpoint used by load
// balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings the active storage backend.
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := h.server.Config.Observability.HealthChecks

	if healthCfg.Enabled {
		driver := h.server.Config.Database.Driver

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
		defer cancel()

		storageStart := time.Now()

		if err := h.server.PingStorage(ctx); err != nil {
			isHealthy = false

			checks["storage"] = map[string]interface{}{
				"driver":        driver,
				"status":        "unhealthy",
				"response_time": time.Since(storageStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("driver", driver).
				Dur("response_time", time.Since(storageStart)).
				Msg("storage health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       "storage",
					"driver":           driver,
					"operation":        "health_check",
					"error_type":       "storage_unhealthy",
					"response_time_ms": time.Since(storageStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			checks["storage"] = map[string]interface{}{
				"driver":        driver,
				"status":        "healthy",
				"response_time": time.Since(storageStart).String(),
			}

			logger.Debug().
				Str("driver", driver).
				Dur("response_time", time.Since(storageStart)).
				Msg("storage health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
