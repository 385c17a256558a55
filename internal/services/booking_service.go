package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/notify"
	"automart/internal/payments"
	"automart/internal/repositories"
	"automart/internal/utils"
)

// CompletionHook runs synchronously after any transition that leaves a
// booking in COMPLETED state. The history ledger registers itself here.
type CompletionHook func(b models.Booking)

// BookingService drives the service-booking lifecycle:
// PENDING -> CONFIRMED -> IN_PROGRESS -> COMPLETED on the workflow
// axis, PENDING -> PAID on the independent payment axis.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	VehicleRepo repositories.VehicleRepo
	ServiceRepo repositories.ServiceRepo
	UserRepo    repositories.UserRepo
	Gateway     payments.Gateway
	Mail        notify.Enqueuer
	RequestID   string

	// OnCompleted hooks fire after every transition into COMPLETED.
	OnCompleted []CompletionHook
}

type CreateBookingInput struct {
	VehicleID       int64
	ServiceIDs      []int64
	AppointmentTime time.Time
}

// Create opens a booking for one of the caller's vehicles. The vehicle
// must belong to the caller; the provisional bill starts at zero and
// is priced later by staff.
func (s BookingService) Create(user models.User, in CreateBookingInput) (models.Booking, error) {
	if in.VehicleID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "vehicle_id", Msg: "required"}
	}
	if len(in.ServiceIDs) == 0 {
		return models.Booking{}, domain.ValidationError{Field: "services", Msg: "at least one service is required"}
	}
	if in.AppointmentTime.IsZero() {
		return models.Booking{}, domain.ValidationError{Field: "appointment_time", Msg: "required"}
	}

	vehicle, err := s.VehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return models.Booking{}, err
	}
	if vehicle.OwnerID != user.ID {
		return models.Booking{}, domain.ValidationError{Field: "vehicle_id", Msg: "vehicle does not belong to you"}
	}

	for _, sid := range in.ServiceIDs {
		if _, err := s.ServiceRepo.GetByID(sid); err != nil {
			return models.Booking{}, err
		}
	}

	id, err := s.BookingRepo.Create(models.Booking{
		UserID:          user.ID,
		VehicleID:       in.VehicleID,
		AppointmentTime: in.AppointmentTime,
		ServiceIDs:      in.ServiceIDs,
	})
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ServiceIDs = in.ServiceIDs

	utils.LogEvent(s.RequestID, "booking", "create", "booking_id="+strconv.FormatInt(id, 10))
	s.enqueue(notify.Mail{
		Subject:    "Service Booking Received",
		Body:       fmt.Sprintf("Hi %s, your booking for %s is received for %s.", user.Username, vehicle.Label(), utils.FormatDateTime(in.AppointmentTime)),
		Recipients: []string{user.Email},
	})

	return booking, nil
}

// Finalize is the staff close-out: it records the authoritative bill
// and completes the booking. Payment stays a separate, user-initiated
// step.
func (s BookingService) Finalize(bookingID int64, finalAmount *float64) (models.Booking, error) {
	if finalAmount == nil {
		return models.Booking{}, domain.ValidationError{Field: "final_amount", Msg: "a final amount is required to complete the booking"}
	}
	if _, err := s.BookingRepo.GetByID(bookingID); err != nil {
		return models.Booking{}, err
	}

	if err := s.BookingRepo.Finalize(bookingID, *finalAmount); err != nil {
		return models.Booking{}, err
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "finalize",
		fmt.Sprintf("booking_id=%d final_amount=%s", bookingID, utils.FormatMoney(*finalAmount)))
	s.fireCompleted(booking)

	if email, err := s.UserRepo.EmailByID(booking.UserID); err == nil {
		s.enqueue(notify.Mail{
			Subject:    "Service Final Quote",
			Body:       fmt.Sprintf("Your service is complete. The final amount is %s. Please pay via your dashboard.", utils.FormatMoney(*finalAmount)),
			Recipients: []string{email},
		})
	}

	return booking, nil
}

// CreatePaymentIntent opens a gateway intent for the effective charge.
// Owner-only: the gateway reference and client secret are never
// exposed to other accounts.
func (s BookingService) CreatePaymentIntent(ctx context.Context, userID, bookingID int64) (clientSecret string, err error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	if booking.UserID != userID {
		return "", domain.PermissionDeniedError{Msg: "not your booking"}
	}

	charge := booking.EffectiveCharge()
	if charge <= 0 {
		return "", domain.InvalidStateError{Msg: "payment amount not set by administrator"}
	}

	intent, err := s.Gateway.CreateIntent(ctx, utils.ToMinorUnits(charge), "inr", map[string]string{
		"booking_id": strconv.FormatInt(booking.ID, 10),
		"type":       "service_booking",
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "create_intent", "gateway error: "+err.Error())
		return "", err
	}

	if err := s.BookingRepo.SetPaymentIntent(booking.ID, intent.ID); err != nil {
		return "", err
	}

	utils.LogEvent(s.RequestID, "booking", "create_intent",
		fmt.Sprintf("booking_id=%d amount_minor=%d", booking.ID, utils.ToMinorUnits(charge)))
	return intent.ClientSecret, nil
}

// VerifyPayment re-checks the intent with the gateway and marks the
// booking PAID on success. A booking already PAID returns success
// without side effects, matching the part-order verification guard.
func (s BookingService) VerifyPayment(ctx context.Context, userID, bookingID int64, intentID string) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != userID {
		return models.Booking{}, domain.PermissionDeniedError{Msg: "not your booking"}
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return booking, nil
	}
	if intentID == "" {
		return models.Booking{}, domain.ValidationError{Field: "payment_intent_id", Msg: "required"}
	}
	// the intent must be the one opened for this booking
	if booking.PaymentIntentID != "" && booking.PaymentIntentID != intentID {
		return models.Booking{}, domain.ValidationError{Field: "payment_intent_id", Msg: "does not match this booking"}
	}

	intent, err := s.Gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return models.Booking{}, err
	}
	if intent.Status != payments.IntentSucceeded {
		return models.Booking{}, domain.InvalidStateError{Msg: "payment status: " + intent.Status}
	}

	if err := s.BookingRepo.SetPaymentStatus(booking.ID, models.PaymentPaid); err != nil {
		return models.Booking{}, err
	}
	booking.PaymentStatus = models.PaymentPaid

	utils.LogEvent(s.RequestID, "booking", "verify_payment", "booking_id="+strconv.FormatInt(booking.ID, 10)+" paid")
	if email, err := s.UserRepo.EmailByID(booking.UserID); err == nil {
		s.enqueue(notify.Mail{
			Subject:    "Service Payment Confirmed",
			Body:       fmt.Sprintf("Payment for Booking #%d was successful. See you at the workshop!", booking.ID),
			Recipients: []string{email},
		})
	}

	return booking, nil
}

// AdminUpdate applies the staff booking editor (workflow status and
// provisional bill). A transition into COMPLETED fires the completion
// hooks; this is also the path that reaches CANCELLED.
func (s BookingService) AdminUpdate(bookingID int64, status string, totalAmount *float64) (models.Booking, error) {
	if status != "" && !validBookingStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}
	if _, err := s.BookingRepo.GetByID(bookingID); err != nil {
		return models.Booking{}, err
	}

	if err := s.BookingRepo.UpdateAdmin(bookingID, status, totalAmount); err != nil {
		return models.Booking{}, err
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if booking.Status == models.BookingCompleted {
		s.fireCompleted(booking)
	}
	return booking, nil
}

func (s BookingService) fireCompleted(b models.Booking) {
	for _, hook := range s.OnCompleted {
		hook(b)
	}
}

func (s BookingService) enqueue(m notify.Mail) {
	if s.Mail != nil {
		s.Mail.Enqueue(m)
	}
}

func validBookingStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingInProgress,
		models.BookingCompleted, models.BookingCancelled:
		return true
	default:
		return false
	}
}
