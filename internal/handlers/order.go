package handlers

import (
	"net/http"
	"strconv"

	"github.com/Skotchmaster/customer_orders/internal/service"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.Svc.GetOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Orders retrieved successfully", transport.OrdersToDTO(orders))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Order retrieved successfully", transport.OrderToDTO(*order))
}

func (h *OrderHandler) CreateOrders(c echo.Context) error {
	var reqs []transport.CreateOrderRequest
	if err := c.Bind(&reqs); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}

	orders, err := h.Svc.CreateOrders(c.Request().Context(), reqs)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Orders added successfully", transport.OrdersToDTO(orders))
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteOrder(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) AddProductToOrder(c echo.Context) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return err
	}

	var req transport.AddProductToOrderRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.Quantity < 0 {
		return respond(c, http.StatusBadRequest, "quantity must be >= 0", nil)
	}

	if err := h.Svc.AddProductToOrder(c.Request().Context(), orderID, req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) RemoveProductFromOrder(c echo.Context) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveProductFromOrder(c.Request().Context(), orderID, productID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) UpdateOrderAddress(c echo.Context) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return err
	}

	var req transport.UpdateOrderAddressRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.Address == "" {
		return respond(c, http.StatusBadRequest, "address is required", nil)
	}

	if err := h.Svc.UpdateOrderAddress(c.Request().Context(), orderID, req.Address); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) UpdateProductQuantity(c echo.Context) error {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}

	var req transport.UpdateOrderQuantityRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.Quantity < 0 {
		return respond(c, http.StatusBadRequest, "quantity must be >= 0", nil)
	}

	if err := h.Svc.UpdateProductQuantityInOrder(c.Request().Context(), orderID, productID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
