package models

import "time"

// Booking workflow states. CANCELLED is reachable from any state short
// of COMPLETED via the staff booking editor.
const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingInProgress = "IN_PROGRESS"
	BookingCompleted  = "COMPLETED"
	BookingCancelled  = "CANCELLED"
)

// Payment sub-states, shared by bookings and part orders. The payment
// axis is independent of the workflow axis: COMPLETED does not imply
// PAID.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

type Booking struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	VehicleID       int64     `json:"vehicle_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"total_amount"`
	FinalAmount     *float64  `json:"final_amount"`
	PaymentStatus   string    `json:"payment_status"`
	// PaymentIntentID is the opaque gateway reference. It is written
	// only by the payment flow, never from client input.
	PaymentIntentID string  `json:"-"`
	ServiceIDs      []int64 `json:"services,omitempty"`
}

// EffectiveCharge resolves the amount actually billed: the final
// amount once set, otherwise the provisional total.
func (b Booking) EffectiveCharge() float64 {
	if b.FinalAmount != nil {
		return *b.FinalAmount
	}
	return b.TotalAmount
}
