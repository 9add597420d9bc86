package requestlog

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/logging"
)

// Middleware puts a request-scoped logger into the request context so
// handlers pick it up through logging.FromContext, and emits one
// completion line per request. Register it after the RequestID
// middleware so the generated ID reaches every log line.
func Middleware(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
			}

			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}
			durMS := time.Since(start).Milliseconds()

			switch {
			case status >= 500:
				l.Error("request completed", "status", status, "duration_ms", durMS, "error", errText(err))
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", durMS)
			default:
				l.Info("request completed", "status", status, "duration_ms", durMS, "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	// The RequestID middleware writes generated IDs to the response.
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
