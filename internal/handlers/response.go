package handlers

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/customer_orders/internal/service"
	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint returns.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{
		StatusCode: code,
		Success:    code < http.StatusBadRequest,
		Message:    message,
		Data:       data,
	})
}

func respondError(c echo.Context, err error) error {
	var stockErr *service.InsufficientStockError
	var validationErr *service.ValidationError

	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &stockErr):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &validationErr), errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	}
	return respond(c, code, err.Error(), nil)
}
