package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenmile/leafdrop/internal/logging"
	"github.com/greenmile/leafdrop/internal/mykafka"
	"github.com/greenmile/leafdrop/internal/service/orders"
	"github.com/greenmile/leafdrop/internal/transport"
)

type OrderHandler struct {
	Svc      *orders.Service
	Producer *mykafka.Producer
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := orders.PlaceOrderInput{
		CustomerName:  req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		Zip:           req.Zip,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, orders.CartLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	result, err := h.Svc.PlaceOrder(ctx, in)
	if err != nil {
		l.Warn("place_order_rejected", "error", err)
		return httpError(l, err)
	}

	l.Info("place_order_success", "order_number", result.OrderNumber, "total", result.Total)
	publishEvent(c, h.Producer, mykafka.TopicOrderEvents, result.OrderNumber, map[string]interface{}{
		"type":         "order_created",
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
		"total":        result.Total,
	})

	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{
		OrderNumber: result.OrderNumber,
		OrderID:     result.OrderID,
		Total:       result.Total,
		Message:     fmt.Sprintf("Order %s received, we'll text you when a driver is on the way", result.OrderNumber),
	})
}

func (h *OrderHandler) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.track_order")

	number := c.QueryParam("number")
	phone := c.QueryParam("phone")

	detail, err := h.Svc.Track(ctx, number, phone)
	if err != nil {
		return httpError(l, err)
	}
	return c.JSON(http.StatusOK, detail)
}
