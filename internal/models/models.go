package models

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Barcode     string    `gorm:"not null"                 json:"barcode"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Quantity    int       `gorm:"not null"                 json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"unique;not null"          json:"username"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Address   string    `gorm:"not null"                 json:"address"`
	IsDeleted bool      `gorm:"default:false"            json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Orders    []Order   `gorm:"foreignKey:CustomerID"    json:"-"`
}

type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint        `gorm:"index;not null"           json:"customer_id"`
	Address    string      `gorm:"not null"                 json:"address"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity>=0"  json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID"        json:"product"`
}

type RequestLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Path         string    `gorm:"not null"                 json:"path"`
	Method       string    `gorm:"not null"                 json:"method"`
	Username     string    `json:"username"`
	RequestBody  string    `json:"request_body"`
	ResponseBody string    `json:"response_body"`
	StatusCode   int       `json:"status_code"`
	Timestamp    time.Time `json:"timestamp"`
}
