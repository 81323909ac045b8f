package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses mirroring the backend's vocabulary.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Delivery statuses.
const (
	DeliveryStatusPending        = "pending"
	DeliveryStatusOutForDelivery = "out-for-delivery"
	DeliveryStatusDelivered      = "delivered"
)

// Order is a placed order as returned by the orders API.
type Order struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customerId"`
	Items          []CartLine      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	DeliveryStatus string          `json:"delivery_status"`
	Address        string          `json:"address,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}
