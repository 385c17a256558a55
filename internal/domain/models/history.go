package models

import "time"

// ServiceHistory is the append-only workshop logbook. At most one
// entry may exist per (user, vehicle, completion date, amount).
type ServiceHistory struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	VehicleID        int64     `json:"vehicle_id"`
	ServicesRendered string    `json:"services_rendered"`
	TotalPaid        float64   `json:"total_paid"`
	OdometerReading  int       `json:"odometer_reading"`
	CompletionDate   time.Time `json:"completion_date"`
	AdminNotes       string    `json:"admin_notes,omitempty"`
}
