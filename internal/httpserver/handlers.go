package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/service/orders"
)

// httpError maps service errors onto HTTP codes. Business-rule
// rejections carry their message so the client can self-correct;
// anything unexpected is logged and kept generic.
func httpError(l *slog.Logger, err error) *echo.HTTPError {
	switch {
	case errors.Is(err, orders.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrDeliveryUnavailable),
		errors.Is(err, orders.ErrBelowMinimum),
		errors.Is(err, orders.ErrInsufficientInventory):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, orders.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case isUnavailable(err):
		l.Error("store unavailable", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "service temporarily unavailable, try again later")
	default:
		l.Error("internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func isUnavailable(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publishEvent is best-effort: a dead broker never fails the request.
func publishEvent(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
