package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
)

func TestRespondDomainErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "status", Msg: "is required"}, http.StatusBadRequest},
		{"invalid state", domain.InvalidStateError{Msg: "order cannot be cancelled at stage: Shipped"}, http.StatusBadRequest},
		{"insufficient stock", domain.InsufficientStockError{Available: 1}, http.StatusBadRequest},
		{"missing payment record", domain.MissingPaymentRecordError{}, http.StatusBadRequest},
		{"refund failed", domain.RefundFailedError{Status: "failed"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "booking"}, http.StatusNotFound},
		{"permission denied", domain.PermissionDeniedError{}, http.StatusForbidden},
		{"conflict", domain.ConflictError{Msg: "insufficient stock at payment time"}, http.StatusConflict},
		{"gateway", domain.GatewayError{Err: errors.New("stripe unreachable")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(c, tc.err)

		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}
