package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

// stackSize bounds the goroutine stack captured for a recovered panic.
const stackSize = 4 << 10

// Recovery turns a panic in a bundle handler into a 500 OperationOutcome.
// The panic value and stack are logged; neither reaches the client.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := make([]byte, stackSize)
				stack = stack[:runtime.Stack(stack, false)]

				ev := logger.Error().
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Bytes("stack", stack)
				if rid, ok := c.Get(requestIDKey).(string); ok {
					ev = ev.Str("request_id", rid)
				}
				if id := c.Param("id"); id != "" {
					ev = ev.Str("bundle_id", id)
				}
				if perr, ok := r.(error); ok {
					ev = ev.Err(perr)
				} else {
					ev = ev.Str("panic", fmt.Sprint(r))
				}
				ev.Msg("panic recovered")

				if c.Response().Committed {
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
					return
				}
				err = c.JSON(http.StatusInternalServerError, fhir.InternalErrorOutcome("internal server error"))
			}()
			return next(c)
		}
	}
}
