package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/service"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string) error { return nil }

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	O  *OrderHandler
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &service.OrderService{
		Orders:   &repo.OrderRepo{DB: db},
		Products: &repo.ProductRepo{DB: db},
		Notifier: nopPublisher{},
		Log:      logger,
	}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		O:  &OrderHandler{Svc: svc},
		DB: db,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) decodeResponse(rec *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateOrdersHandler(t *testing.T) {
	env := newTestEnv(t)

	product := models.Product{Barcode: "111", Description: "keyboard", Price: 10, Quantity: 5}
	require.NoError(t, env.DB.Create(&product).Error)

	body := []transport.CreateOrderRequest{
		{CustomerID: 1, Address: "A", Items: []transport.OrderItemRequest{{ProductID: product.ID, Quantity: 2}}},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/customerorders", body)
	require.NoError(t, env.O.CreateOrders(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := env.decodeResponse(rec)
	require.True(t, resp.Success)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Orders added successfully", resp.Message)
}

func TestCreateOrdersHandlerRejectsInvalidProduct(t *testing.T) {
	env := newTestEnv(t)

	product := models.Product{Barcode: "111", Description: "keyboard", Price: 10, Quantity: 5}
	require.NoError(t, env.DB.Create(&product).Error)

	body := []transport.CreateOrderRequest{
		{CustomerID: 1, Address: "A", Items: []transport.OrderItemRequest{{ProductID: product.ID, Quantity: 2}}},
		{CustomerID: 2, Address: "B", Items: []transport.OrderItemRequest{{ProductID: 9999, Quantity: 1}}},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/customerorders", body)
	require.NoError(t, env.O.CreateOrders(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := env.decodeResponse(rec)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "9999")

	var count int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGetOrderHandlerComputesTotal(t *testing.T) {
	env := newTestEnv(t)

	product := models.Product{Barcode: "111", Description: "keyboard", Price: 10, Quantity: 5}
	require.NoError(t, env.DB.Create(&product).Error)
	order := models.Order{CustomerID: 1, Address: "A", Items: []models.OrderItem{{ProductID: product.ID, Quantity: 3}}}
	require.NoError(t, env.DB.Create(&order).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/customerorders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		StatusCode int                `json:"statusCode"`
		Success    bool               `json:"success"`
		Data       transport.OrderDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, float64(30), resp.Data.TotalAmount)
	require.Len(t, resp.Data.Items, 1)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/customerorders/5", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.O.GetOrder(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := env.decodeResponse(rec)
	require.False(t, resp.Success)
}

func TestAddProductToOrderHandlerConflict(t *testing.T) {
	env := newTestEnv(t)

	product := models.Product{Barcode: "111", Description: "keyboard", Price: 10, Quantity: 5}
	require.NoError(t, env.DB.Create(&product).Error)
	order := models.Order{CustomerID: 1, Address: "A", Items: []models.OrderItem{{ProductID: product.ID, Quantity: 1}}}
	require.NoError(t, env.DB.Create(&order).Error)

	body := transport.AddProductToOrderRequest{ProductID: product.ID, Quantity: 2}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/customerorders/1/products", body)
	c.SetParamNames("orderId")
	c.SetParamValues("1")
	require.NoError(t, env.O.AddProductToOrder(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateQuantityHandlerInsufficientStock(t *testing.T) {
	env := newTestEnv(t)

	product := models.Product{Barcode: "111", Description: "keyboard", Price: 10, Quantity: 10}
	require.NoError(t, env.DB.Create(&product).Error)
	order := models.Order{CustomerID: 1, Address: "A", Items: []models.OrderItem{{ProductID: product.ID, Quantity: 3}}}
	require.NoError(t, env.DB.Create(&order).Error)

	body := transport.UpdateOrderQuantityRequest{Quantity: 15}
	rec, c := env.doJSONRequest(http.MethodPatch, "/api/customerorders/1/products/1/quantity", body)
	c.SetParamNames("orderId", "productId")
	c.SetParamValues("1", "1")
	require.NoError(t, env.O.UpdateProductQuantity(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := env.decodeResponse(rec)
	require.Contains(t, resp.Message, "available 10")
}

func TestDeleteOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	order := models.Order{CustomerID: 1, Address: "A"}
	require.NoError(t, env.DB.Create(&order).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/customerorders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.O.DeleteOrder(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
