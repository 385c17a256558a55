package models

import "time"

// DentingRequest is a free-form denting/painting estimate request.
// Staff review it and set the estimated price.
type DentingRequest struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Description    string    `json:"description"`
	VehicleMake    string    `json:"vehicle_make"`
	VehicleModel   string    `json:"vehicle_model"`
	Status         string    `json:"status"`
	EstimatedPrice float64   `json:"estimated_price"`
	CreatedAt      time.Time `json:"created_at"`
}

const DentingPendingReview = "Pending Review"
