package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/http/middleware"
	"automart/internal/repositories"
	"automart/internal/services"
)

type checkoutRequest struct {
	PartID          int64  `json:"part_id"`
	VehicleID       *int64 `json:"vehicle_id"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
	Quantity        int    `json:"quantity"`
}

// CheckoutPart freezes the price and opens a payment intent for a
// spare-part purchase.
func CheckoutPart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var req checkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := orderService(c).Checkout(c.Request.Context(), user, services.CheckoutInput{
		PartID:          req.PartID,
		VehicleID:       req.VehicleID,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
		Quantity:        req.Quantity,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": result.OrderID, "clientSecret": result.ClientSecret})
}

type verifyPartPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// VerifyPartPayment confirms the charge and decrements stock exactly
// once, no matter how many times the frontend retries.
func VerifyPartPayment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req verifyPartPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := orderService(c).VerifyPayment(c.Request.Context(), user.ID, id, req.PaymentIntentID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ListPartOrders returns the caller's orders, or all orders for staff.
func ListPartOrders(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	repo := repositories.PartOrderRepo{}

	var err error
	var orders any
	if user.IsStaffOrSpecialist() {
		orders, err = repo.ListAll()
	} else {
		orders, err = repo.ListByUser(user.ID)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CancelPartOrder cancels an order that has not shipped, refunding any
// captured payment first.
func CancelPartOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := orderService(c).Cancel(c.Request.Context(), user.ID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         result.Message,
		"order_status":   result.OrderStatus,
		"payment_status": result.PaymentStatus,
	})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateOrderStatus moves an order through fulfilment (staff
// only). Cancelling a paid order triggers a refund.
func AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req orderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := orderService(c).AdminUpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.Status, "payment_status": order.PaymentStatus})
}

// OrderStats reports revenue and active distributions (staff only).
func OrderStats(c *gin.Context) {
	stats, err := orderService(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
