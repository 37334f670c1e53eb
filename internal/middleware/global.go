package middleware

import (
	"net/http"

	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/deppfellow/todo-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware restricted to the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request, levelled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler fails, so the status is taken from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusFromError(v.Error, statusCode)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// statusFromError returns the status an error will be rendered with,
// fallback when the error carries none.
func statusFromError(err error, fallback int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	case fallback < 400:
		return http.StatusInternalServerError
	default:
		return fallback
	}
}

// Recover turns panics into errors handled by GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure sets the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler renders every error as an errs.HTTPError body.
//
// Echo's own errors keep their status (404 becomes "Route not found"),
// anything unclassified goes through sqlerr.HandleError. The original
// error is logged, never sent.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError
	var action *errs.Action

	httpErr = nil
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors
		action = httpErr.Action

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	logger := *GetLogger(c)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}

	if dbCode := sqlerr.ErrCode(originalErr); dbCode != sqlerr.Other {
		event = event.Str("db_error", string(dbCode))
	}

	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}

		_ = c.JSON(status, errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   status,
			Override: httpErr != nil && httpErr.Override,
			Errors:   fieldErrors,
			Action:   action,
		})
	}
}
