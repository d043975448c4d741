package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// PanicResponder writes the response for a request whose handler panicked.
type PanicResponder func(c echo.Context) error

// Recovery returns Echo middleware that logs a handler panic with its stack
// and answers through respond, so the error body keeps the API's media type.
// A nil respond sends a bare 500. Nothing is written when the handler had
// already committed a response. http.ErrAbortHandler is re-raised so the
// server aborts the connection as usual.
func Recovery(log *slog.Logger, respond PanicResponder) echo.MiddlewareFunc {
	if respond == nil {
		respond = func(c echo.Context) error {
			return c.NoContent(http.StatusInternalServerError)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				committed := c.Response().Committed
				log.ErrorContext(c.Request().Context(), "handler panicked",
					"panic", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", c.Get(ContextKeyRequestID),
					"committed", committed,
					"stack", string(debug.Stack()),
				)
				if committed {
					return
				}
				err = respond(c)
			}()
			return next(c)
		}
	}
}
