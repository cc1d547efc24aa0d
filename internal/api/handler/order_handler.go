package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/api/metrics"
	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

// OrderHandler handles order placement. The route runs behind the cookie
// auth middleware, which injects the authenticated username.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// orderItemRequest lines are checked by hand below: validator.Struct cannot
// walk a top-level JSON array, so tags on this struct would never run.
type orderItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Create places an order for the logged-in user.
//
// Responses use machine-readable message codes: order.success,
// order.notLoggedIn, order.productNotFound, order.notEnoughStock (with the
// product name alongside).
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      []orderItemRequest  true  "Order line items"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/order/create [post]
func (h *OrderHandler) Create(c echo.Context) error {
	username, _ := c.Get("username").(string)
	if username == "" {
		metrics.OrdersRejectedTotal.WithLabelValues("not_logged_in").Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "order.notLoggedIn"})
	}

	var items []orderItemRequest
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "order.invalidPayload"})
	}

	lines := make([]ports.OrderLine, len(items))
	for i, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			metrics.OrdersRejectedTotal.WithLabelValues("invalid_payload").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "order.invalidPayload"})
		}
		lines[i] = ports.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := h.orderService.PlaceOrder(c.Request().Context(), username, lines)
	if err != nil {
		var outOfStock *domain.OutOfStockError
		if errors.As(err, &outOfStock) {
			metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message":     "order.notEnoughStock",
				"productName": outOfStock.ProductName,
			})
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			metrics.OrdersRejectedTotal.WithLabelValues("product_not_found").Inc()
			return c.JSON(http.StatusNotFound, echo.Map{"message": "order.productNotFound"})
		}
		metrics.OrdersRejectedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderValueTotal.Add(result.Total)

	return c.JSON(http.StatusOK, echo.Map{"message": "order.success"})
}
