package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"automart/internal/config"
	"automart/internal/domain/models"
	"automart/internal/notify"
	"automart/internal/payments"
)

type stubGateway struct{}

func (stubGateway) CreateIntent(context.Context, int64, string, map[string]string) (payments.Intent, error) {
	return payments.Intent{ID: "pi_test", ClientSecret: "cs_test", Status: "requires_payment_method"}, nil
}

func (stubGateway) RetrieveIntent(_ context.Context, id string) (payments.Intent, error) {
	return payments.Intent{ID: id, Status: payments.IntentSucceeded}, nil
}

func (stubGateway) CreateRefund(context.Context, string) (payments.Refund, error) {
	return payments.Refund{ID: "re_test", Status: payments.RefundSucceeded}, nil
}

type dropMailer struct{}

func (dropMailer) Enqueue(notify.Mail) {}

// installTestDeps points the shared handler dependencies at a sqlmock
// DB and stub gateway for the duration of one test.
func installTestDeps(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		db.Close()
	})
	Configure(config.Env{}, stubGateway{}, dropMailer{})
	return mock
}

func authedContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("auth_user", models.User{ID: 10, Username: "asha", Email: "asha@example.com"})
	return c, w
}

// Clients read the intent secret from the camel-cased clientSecret key
// on both payment endpoints; the remaining keys stay snake_cased.
func TestCheckoutPartResponseShape(t *testing.T) {
	mock := installTestDeps(t)

	mock.ExpectQuery("FROM spare_parts WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "brand", "model", "year", "description", "price", "stock",
		}).AddRow(int64(3), "Brake Pad", "Bosch", "Swift", "2020", "", 199.90, 5))
	mock.ExpectExec("INSERT INTO part_orders").
		WillReturnResult(sqlmock.NewResult(42, 1))

	c, w := authedContext(t, http.MethodPost, "/api/part-orders/checkout",
		`{"part_id":3,"quantity":2}`)
	CheckoutPart(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if string(resp["clientSecret"]) != `"cs_test"` {
		t.Fatalf("clientSecret = %s, body = %s", resp["clientSecret"], w.Body.String())
	}
	if string(resp["order_id"]) != "42" {
		t.Fatalf("order_id = %s, body = %s", resp["order_id"], w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingPaymentIntentResponseShape(t *testing.T) {
	mock := installTestDeps(t)

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "vehicle_id", "appointment_time", "status",
			"total_amount", "final_amount", "payment_status", "payment_intent_id",
		}).AddRow(int64(1), int64(10), int64(1), time.Now(), models.BookingCompleted,
			100.00, 80.00, models.PaymentPending, ""))
	mock.ExpectExec("UPDATE bookings SET payment_intent_id").
		WithArgs("pi_test", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := authedContext(t, http.MethodPost, "/api/bookings/1/create_payment_intent", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	CreateBookingPaymentIntent(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["clientSecret"] != "cs_test" {
		t.Fatalf("clientSecret = %q, body = %s", resp["clientSecret"], w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
