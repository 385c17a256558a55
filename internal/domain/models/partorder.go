package models

import "time"

// Part order fulfilment states. Cancellation is allowed from Pending
// and Confirmed only.
const (
	OrderPending   = "Pending"
	OrderConfirmed = "Confirmed"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

type PartOrder struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	PartID          int64     `json:"part_id"`
	Quantity        int       `json:"quantity"`
	VehicleID       *int64    `json:"vehicle_id,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentIntentID string    `json:"-"`
	// TotalPrice is frozen at checkout; later catalog price changes do
	// not touch existing orders.
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsValidOrderStatus guards the admin status editor input.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}
