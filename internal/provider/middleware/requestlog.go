// Package middleware provides Echo middleware for the mock Ad Posting API.
package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the correlation id of every response.
const RequestIDHeader = "X-Request-Id"

// ContextKeyRequestID is the echo context key holding the request id.
const ContextKeyRequestID = "request_id"

// quietPaths are health check endpoints whose repeated successes are logged once.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that assigns each request an id and logs
// it with structured fields. A client supplied X-Request-Id is kept. Failed
// responses are logged at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			failed := status >= http.StatusInternalServerError ||
				(status >= http.StatusBadRequest && isQuiet(path))

			if !failed && isQuiet(path) {
				mu.Lock()
				logged := seen[path]
				seen[path] = true
				mu.Unlock()
				if logged {
					return err
				}
			}

			level := slog.LevelInfo
			if failed {
				level = slog.LevelWarn
			}
			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

func isQuiet(path string) bool {
	_, ok := quietPaths[path]
	return ok
}
