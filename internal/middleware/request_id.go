package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the request correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the Echo context key of the request ID.
	RequestIDKey = "request_id"

	// maxRequestIDLength caps client-supplied IDs before they reach logs.
	maxRequestIDLength = 128
)

// RequestID reuses the incoming X-Request-ID header when it is present
// and sane, generates a UUID otherwise, and echoes it on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID retrieves the request ID from Echo context.
//
// Returns empty string if not set.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
