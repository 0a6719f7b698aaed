package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	CustomerID    uuid.UUID      `json:"customer_id" db:"customer_id"`
	Customer      *Customer      `json:"customer,omitempty"`
	OrderProducts []OrderProduct `json:"order_products"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// OrderProduct is one line of an order. Price is the product's unit price
// captured at order time, not a live reference. Quantity is a json.Number
// because the backing column is numeric and some drivers hand it back as
// text; the order lookup normalizes it to integer form.
type OrderProduct struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	OrderID   uuid.UUID   `json:"order_id" db:"order_id"`
	ProductID uuid.UUID   `json:"product_id" db:"product_id"`
	Price     float64     `json:"price" db:"price"`
	Quantity  json.Number `json:"quantity" db:"quantity"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderLineRequest is one requested (product, quantity) pair. The product
// batch lookup takes it as its key list, and UpdateQuantity reuses it to
// carry the new absolute stock level per product.
type OrderLineRequest struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}
