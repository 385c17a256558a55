package services

import (
	"context"
	"fmt"
	"strconv"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/notify"
	"automart/internal/payments"
	"automart/internal/repositories"
	"automart/internal/utils"
)

// OrderService drives the spare-part purchase lifecycle: checkout,
// payment verification with its exactly-once stock decrement, and
// cancellation with refunds.
type OrderService struct {
	OrderRepo   repositories.PartOrderRepo
	PartRepo    repositories.PartRepo
	VehicleRepo repositories.VehicleRepo
	UserRepo    repositories.UserRepo
	Gateway     payments.Gateway
	Mail        notify.Enqueuer
	RequestID   string
}

type CheckoutInput struct {
	PartID          int64
	VehicleID       *int64
	PhoneNumber     string
	ShippingAddress string
	Quantity        int
}

type CheckoutResult struct {
	OrderID      int64
	ClientSecret string
}

// Checkout freezes the price, opens a payment intent and records the
// order as Pending/PENDING. Stock is only checked here, not reserved;
// the decrement happens at verification inside a guarded transaction.
func (s OrderService) Checkout(ctx context.Context, user models.User, in CheckoutInput) (CheckoutResult, error) {
	if in.PartID <= 0 {
		return CheckoutResult{}, domain.ValidationError{Field: "part_id", Msg: "required"}
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return CheckoutResult{}, domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}

	part, err := s.PartRepo.GetByID(in.PartID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if part.Stock < quantity {
		return CheckoutResult{}, domain.InsufficientStockError{Available: part.Stock}
	}

	if in.VehicleID != nil {
		vehicle, err := s.VehicleRepo.GetByID(*in.VehicleID)
		if err != nil {
			return CheckoutResult{}, err
		}
		if vehicle.OwnerID != user.ID {
			return CheckoutResult{}, domain.ValidationError{Field: "vehicle_id", Msg: "vehicle does not belong to you"}
		}
	}

	// Frozen at this instant; later catalog price changes do not
	// affect this order.
	totalPrice := part.Price * float64(quantity)

	intent, err := s.Gateway.CreateIntent(ctx, utils.ToMinorUnits(totalPrice), "inr", map[string]string{
		"user":     user.Username,
		"type":     "spare_part_purchase",
		"quantity": strconv.Itoa(quantity),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "order", "checkout", "gateway error: "+err.Error())
		return CheckoutResult{}, err
	}

	orderID, err := s.OrderRepo.Create(models.PartOrder{
		UserID:          user.ID,
		PartID:          part.ID,
		Quantity:        quantity,
		VehicleID:       in.VehicleID,
		PhoneNumber:     in.PhoneNumber,
		ShippingAddress: in.ShippingAddress,
		PaymentIntentID: intent.ID,
		TotalPrice:      totalPrice,
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	utils.LogEvent(s.RequestID, "order", "checkout",
		fmt.Sprintf("order_id=%d part_id=%d qty=%d total=%s", orderID, part.ID, quantity, utils.FormatMoney(totalPrice)))
	return CheckoutResult{OrderID: orderID, ClientSecret: intent.ClientSecret}, nil
}

// VerifyPayment marks the order PAID after the gateway confirms the
// intent succeeded. The stock decrement happens exactly once per
// order: repeated calls on a PAID order return success with no side
// effects and no second confirmation mail.
func (s OrderService) VerifyPayment(ctx context.Context, userID, orderID int64, intentID string) error {
	order, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return domain.PermissionDeniedError{Msg: "not your order"}
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil
	}
	if intentID == "" {
		return domain.ValidationError{Field: "payment_intent_id", Msg: "required"}
	}
	// the intent must be the one opened at checkout for this order
	if order.PaymentIntentID != "" && order.PaymentIntentID != intentID {
		return domain.ValidationError{Field: "payment_intent_id", Msg: "does not match this order"}
	}

	intent, err := s.Gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if intent.Status != payments.IntentSucceeded {
		return domain.InvalidStateError{Msg: "payment failed"}
	}

	alreadyPaid, err := s.OrderRepo.MarkPaidAndDecrementStock(order.ID)
	if err != nil {
		return err
	}
	if alreadyPaid {
		return nil
	}

	utils.LogEvent(s.RequestID, "order", "verify_payment", "order_id="+strconv.FormatInt(order.ID, 10)+" paid")
	part, perr := s.PartRepo.GetByID(order.PartID)
	if email, err := s.UserRepo.EmailByID(order.UserID); err == nil && perr == nil {
		s.enqueue(notify.Mail{
			Subject:    "AutoMart Order Confirmed",
			Body:       fmt.Sprintf("Your order for %dx %s is confirmed.", order.Quantity, part.Name),
			Recipients: []string{email},
		})
	}

	return nil
}

type CancelResult struct {
	Message       string
	OrderStatus   string
	PaymentStatus string
}

// Cancel handles a customer cancellation. The fulfilment stage is
// validated before anything irreversible happens, so a refund can
// never run for an order that then turns out uncancellable. A PAID
// order must carry a payment reference; a refund the gateway reports
// as anything but succeeded/pending aborts with no state change. The
// cancellation mail goes out only after the state change sticks.
func (s OrderService) Cancel(ctx context.Context, userID, orderID int64) (CancelResult, error) {
	order, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return CancelResult{}, err
	}
	if order.UserID != userID {
		return CancelResult{}, domain.PermissionDeniedError{Msg: "not your order"}
	}

	if order.Status != models.OrderPending && order.Status != models.OrderConfirmed {
		return CancelResult{}, domain.InvalidStateError{Msg: "order cannot be cancelled at stage: " + order.Status}
	}

	refunded, err := s.refundIfPaid(ctx, order)
	if err != nil {
		return CancelResult{}, err
	}
	if refunded {
		order.PaymentStatus = models.PaymentRefunded
	}

	if err := s.OrderRepo.UpdateStatus(order.ID, models.OrderCancelled); err != nil {
		return CancelResult{}, err
	}
	order.Status = models.OrderCancelled

	utils.LogEvent(s.RequestID, "order", "cancel",
		fmt.Sprintf("order_id=%d refunded=%t", order.ID, refunded))
	s.notifyCancellation(order)

	msg := "Order cancelled."
	if refunded {
		msg = "Order cancelled and refund initiated."
	}
	return CancelResult{
		Message:       msg,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
	}, nil
}

// AdminUpdateStatus applies any fulfilment status unconditionally and
// notifies the customer. Moving a PAID order to Cancelled triggers the
// same guarded refund path as a customer cancellation.
func (s OrderService) AdminUpdateStatus(ctx context.Context, orderID int64, newStatus string) (models.PartOrder, error) {
	if newStatus == "" {
		return models.PartOrder{}, domain.ValidationError{Field: "status", Msg: "status is required"}
	}
	if !models.IsValidOrderStatus(newStatus) {
		return models.PartOrder{}, domain.ValidationError{Field: "status", Msg: "unknown status " + newStatus}
	}

	order, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return models.PartOrder{}, err
	}

	if newStatus == models.OrderCancelled {
		refunded, err := s.refundIfPaid(ctx, order)
		if err != nil {
			return models.PartOrder{}, err
		}
		if refunded {
			order.PaymentStatus = models.PaymentRefunded
		}
	}

	if err := s.OrderRepo.UpdateStatus(order.ID, newStatus); err != nil {
		return models.PartOrder{}, err
	}
	order.Status = newStatus

	utils.LogEvent(s.RequestID, "order", "admin_update_status",
		fmt.Sprintf("order_id=%d status=%s", order.ID, newStatus))
	if email, err := s.UserRepo.EmailByID(order.UserID); err == nil {
		s.enqueue(notify.Mail{
			Subject:    "AutoMart Order Update: " + newStatus,
			Body:       "Your part order status has changed to: " + newStatus,
			Recipients: []string{email},
		})
	}

	return order, nil
}

// refundIfPaid issues a refund for a PAID order and records REFUNDED.
// Orders in any other payment state pass through untouched.
func (s OrderService) refundIfPaid(ctx context.Context, order models.PartOrder) (bool, error) {
	if order.PaymentStatus != models.PaymentPaid {
		return false, nil
	}
	if order.PaymentIntentID == "" {
		return false, domain.MissingPaymentRecordError{}
	}

	ref, err := s.Gateway.CreateRefund(ctx, order.PaymentIntentID)
	if err != nil {
		return false, err
	}
	if ref.Status != payments.RefundSucceeded && ref.Status != payments.RefundPending {
		return false, domain.RefundFailedError{Status: ref.Status}
	}

	if err := s.OrderRepo.SetPaymentStatus(order.ID, models.PaymentRefunded); err != nil {
		return false, err
	}
	return true, nil
}

type OrderStats struct {
	TotalPaidRevenue    float64 `json:"total_paid_revenue"`
	ActiveDistributions int     `json:"active_distributions"`
}

func (s OrderService) Stats() (OrderStats, error) {
	revenue, active, err := s.OrderRepo.Stats()
	if err != nil {
		return OrderStats{}, err
	}
	return OrderStats{TotalPaidRevenue: revenue, ActiveDistributions: active}, nil
}

func (s OrderService) notifyCancellation(order models.PartOrder) {
	part, err := s.PartRepo.GetByID(order.PartID)
	if err != nil {
		return
	}
	if email, err := s.UserRepo.EmailByID(order.UserID); err == nil {
		s.enqueue(notify.Mail{
			Subject:    "AutoMart Order Cancelled",
			Body:       fmt.Sprintf("Order cancellation for %s completed. Any captured amount will be refunded in due course.", part.Name),
			Recipients: []string{email},
		})
	}
}

func (s OrderService) enqueue(m notify.Mail) {
	if s.Mail != nil {
		s.Mail.Enqueue(m)
	}
}
