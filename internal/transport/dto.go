package transport

import (
	"time"

	"github.com/Skotchmaster/customer_orders/internal/models"
)

type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID uint               `json:"customer_id"`
	Address    string             `json:"address"`
	Items      []OrderItemRequest `json:"items"`
}

type AddProductToOrderRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateOrderAddressRequest struct {
	Address string `json:"address"`
}

type UpdateOrderQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type UpdateProductRequest struct {
	Barcode     *string  `json:"barcode"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

type CreateProductRequest struct {
	Barcode     string  `json:"barcode"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type OrderItemDTO struct {
	ProductID   uint    `json:"product_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type OrderDTO struct {
	ID          uint           `json:"id"`
	CustomerID  uint           `json:"customer_id"`
	Address     string         `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
	TotalAmount float64        `json:"total_amount"`
	Items       []OrderItemDTO `json:"items"`
}

// OrderToDTO derives TotalAmount from the current catalog price of every line
// item, so a later price change moves historical totals as well.
func OrderToDTO(order models.Order) OrderDTO {
	dto := OrderDTO{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Address:    order.Address,
		CreatedAt:  order.CreatedAt,
		Items:      make([]OrderItemDTO, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		dto.TotalAmount += item.Product.Price * float64(item.Quantity)
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:   item.ProductID,
			Description: item.Product.Description,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
		})
	}
	return dto
}

func OrdersToDTO(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = OrderToDTO(order)
	}
	return dtos
}
