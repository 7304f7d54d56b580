package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/utils"
)

// PanicRecoveryMiddleware creates a middleware that recovers from panics,
// logs the stack trace server-side and returns a generic 500 to the client.
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					zapLogger.Error("Panic recovered",
						logger.String("path", c.Request().URL.Path),
						logger.String("method", c.Request().Method),
						logger.String("stack", string(debug.Stack())),
						logger.Err(err))

					if !c.Response().Committed {
						_ = utils.InternalServerErrorResponse(c, http.StatusText(http.StatusInternalServerError))
					}
				}
			}()

			return next(c)
		}
	}
}
