package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/middleware/auth"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/service/orders"
	"github.com/greenmile/leafdrop/internal/transport"
	"github.com/greenmile/leafdrop/internal/util"
)

type OrderAdminHandler struct {
	Svc      *orders.Service
	Producer *mykafka.Producer
}

func (h *OrderAdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	status := models.OrderStatus(c.QueryParam("status"))

	total, items, err := h.Svc.ListOrders(ctx, status, offset, limit)
	if err != nil {
		return httpError(l, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *OrderAdminHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	detail, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderAdminHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_status")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	actor := auth.CallerIdentity(c).Subject
	order, err := h.Svc.UpdateStatus(ctx, id, models.OrderStatus(req.Status), actor)
	if err != nil {
		l.Warn("update_status_rejected", "order_id", id, "error", err)
		return httpError(l, err)
	}

	l.Info("update_status_success", "order_id", id, "status", order.Status)
	publishEvent(c, h.Producer, mykafka.TopicOrderEvents, order.OrderNumber, map[string]interface{}{
		"type":         "order_status_changed",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"actor":        actor,
	})
	return c.JSON(http.StatusOK, order)
}

func (h *OrderAdminHandler) AssignDriver(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.assign_driver")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.AssignDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.DriverID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "driver_id is required")
	}

	actor := auth.CallerIdentity(c).Subject
	assignment, err := h.Svc.AssignDriver(ctx, id, req.DriverID, actor)
	if err != nil {
		return httpError(l, err)
	}

	publishEvent(c, h.Producer, mykafka.TopicOrderEvents, fmt.Sprint(id), map[string]interface{}{
		"type":      "driver_assigned",
		"order_id":  id,
		"driver_id": req.DriverID,
		"actor":     actor,
	})
	return c.JSON(http.StatusOK, assignment)
}

func (h *OrderAdminHandler) Approve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.approve_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	actor := auth.CallerIdentity(c).Subject
	order, err := h.Svc.Approve(ctx, id, actor)
	if err != nil {
		return httpError(l, err)
	}

	publishEvent(c, h.Producer, mykafka.TopicOrderEvents, order.OrderNumber, map[string]interface{}{
		"type":         "order_approved",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"actor":        actor,
	})
	return c.JSON(http.StatusOK, order)
}
