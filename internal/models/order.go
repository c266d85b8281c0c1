package models

import "time"

// Order statuses.
const (
	OrderDraft     = "draft"
	OrderConfirmed = "confirmed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order is a sales order taken by a salesperson for a customer.
type Order struct {
	ID            string      `json:"id" db:"id"`
	CustomerID    string      `json:"customer_id" db:"customer_id"`
	CustomerName  string      `json:"customer_name,omitempty" db:"customer_name"`
	SalespersonID string      `json:"salesperson_id" db:"salesperson_id"`
	Status        string      `json:"status" db:"status"`
	Total         float64     `json:"total" db:"total"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem is one product line on an order. UnitPrice is a snapshot of the
// catalog price at order time; later catalog changes do not touch it.
type OrderItem struct {
	ID        string  `json:"id" db:"id"`
	OrderID   string  `json:"-" db:"order_id"`
	ProductID string  `json:"product_id" db:"product_id"`
	Name      string  `json:"name,omitempty" db:"name"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft confirmed delivered cancelled"`
}
