package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/service/zones"
)

type ZonesHandler struct {
	Resolver *zones.Resolver
}

// CheckZip is the advisory storefront availability check. The order
// engine never trusts its result.
func (h *ZonesHandler) CheckZip(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "zones.check_zip")

	zip := c.QueryParam("zip")
	if len(zip) < 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "zip must be at least 5 characters")
	}

	avail, err := h.Resolver.Resolve(ctx, zip)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, avail)
}
