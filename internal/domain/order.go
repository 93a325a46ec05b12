package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. An order starts as
// StatusCreated (the shopper's open cart) and moves to exactly one of the
// terminal states.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Cancelled and completed are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	return s == StatusCreated && next != StatusCreated
}

// Order represents a placed (or still open) order. The shopper's cart is
// simply their order in status "created".
type Order struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Status     OrderStatus    `json:"status" db:"status"`
	UserID     uuid.UUID      `json:"user_id" db:"user_id"`
	DatePlaced time.Time      `json:"date_placed" db:"date_placed"`
	Items      []OrderProduct `json:"items"`
}

// OrderProduct is a line item joining an order to a product. Price is a
// point-in-time snapshot taken when the product was added, not a live
// reference to the product's current price.
type OrderProduct struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}
