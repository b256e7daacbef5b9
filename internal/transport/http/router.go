package httpserver

import (
	"github.com/Skotchmaster/customer_orders/internal/handlers"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB              *gorm.DB
	OrderHandler    *handlers.OrderHandler
	ProductHandler  *handlers.ProductHandler
	CustomerHandler *handlers.CustomerHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	orders := api.Group("/customerorders")
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrders)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
	orders.POST("/:orderId/products", d.OrderHandler.AddProductToOrder)
	orders.DELETE("/:orderId/products/:productId", d.OrderHandler.RemoveProductFromOrder)
	orders.PUT("/:orderId/address", d.OrderHandler.UpdateOrderAddress)
	orders.PATCH("/:orderId/products/:productId/quantity", d.OrderHandler.UpdateProductQuantity)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PATCH("/:id", d.ProductHandler.PatchProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	customers := api.Group("/customers")
	customers.GET("", d.CustomerHandler.GetCustomers)
	customers.GET("/:id", d.CustomerHandler.GetCustomer)
	customers.PUT("/:id", d.CustomerHandler.UpdateCustomer)
	customers.DELETE("/:id", d.CustomerHandler.DeleteCustomer)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}
}
