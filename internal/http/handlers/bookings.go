package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/http/middleware"
	"automart/internal/repositories"
	"automart/internal/services"
	"automart/internal/utils"
)

type createBookingRequest struct {
	VehicleID       int64   `json:"vehicle_id"`
	Services        []int64 `json:"services"`
	AppointmentTime string  `json:"appointment_time"`
}

// CreateBooking opens a service booking for one of the caller's
// vehicles.
func CreateBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := utils.ParseAppointment(req.AppointmentTime)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "appointment_time", Msg: "must be RFC3339 or YYYY-MM-DD HH:MM:SS"})
		return
	}

	booking, err := bookingService(c).Create(user, services.CreateBookingInput{
		VehicleID:       req.VehicleID,
		ServiceIDs:      req.Services,
		AppointmentTime: appt,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBookings returns the caller's bookings, or every booking for
// staff and specialists.
func ListBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	repo := repositories.BookingRepo{}

	var err error
	var bookings any
	if user.IsStaffOrSpecialist() {
		bookings, err = repo.ListAll()
	} else {
		bookings, err = repo.ListByUser(user.ID)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns one booking; customers can only see their own.
func GetBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := repositories.BookingRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != user.ID && !user.IsStaffOrSpecialist() {
		RespondDomainError(c, domain.PermissionDeniedError{Msg: "not your booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBookingPaymentIntent opens a gateway intent for the booking's
// effective charge and returns the client secret.
func CreateBookingPaymentIntent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	secret, err := bookingService(c).CreatePaymentIntent(c.Request.Context(), user.ID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

type verifyPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// VerifyBookingPayment confirms a charge with the gateway and marks
// the booking PAID.
func VerifyBookingPayment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req verifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := bookingService(c).VerifyPayment(c.Request.Context(), user.ID, id, req.PaymentIntentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payment_status": booking.PaymentStatus})
}

type finalizeBookingRequest struct {
	FinalAmount *float64 `json:"final_amount"`
}

// FinalizeBooking closes a job with the adjusted bill (staff only).
func FinalizeBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req finalizeBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := bookingService(c).Finalize(id, req.FinalAmount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": booking.Status, "final_amount": booking.FinalAmount})
}

type adminBookingUpdateRequest struct {
	Status      string   `json:"status"`
	TotalAmount *float64 `json:"total_amount"`
}

// AdminUpdateBooking lets staff move a booking through its workflow
// states and adjust the provisional amount.
func AdminUpdateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req adminBookingUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := bookingService(c).AdminUpdate(id, req.Status, req.TotalAmount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
