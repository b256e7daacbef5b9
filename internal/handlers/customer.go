package handlers

import (
	"net/http"

	"github.com/Skotchmaster/customer_orders/internal/service"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Svc *service.CustomerService
}

func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	customers, err := h.Svc.GetCustomers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customers retrieved successfully", customers)
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.Svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer retrieved successfully", customer)
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}

	customer, err := h.Svc.UpdateCustomer(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer updated successfully", customer)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
