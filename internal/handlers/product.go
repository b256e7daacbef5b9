package handlers

import (
	"net/http"

	"github.com/Skotchmaster/customer_orders/internal/service"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Svc *service.ProductService
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.Svc.GetProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Product added successfully", product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body", nil)
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
