package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/notify"
	"automart/internal/payments"
	"automart/internal/repositories"
)

type fakeGateway struct {
	createCalls   int
	retrieveCalls int
	refundCalls   int
	lastAmount    int64
	lastCurrency  string

	intentStatus string
	refundStatus string
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountMinor int64, currency string, _ map[string]string) (payments.Intent, error) {
	g.createCalls++
	g.lastAmount = amountMinor
	g.lastCurrency = currency
	return payments.Intent{ID: "pi_test", ClientSecret: "cs_test", Status: "requires_payment_method"}, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, id string) (payments.Intent, error) {
	g.retrieveCalls++
	status := g.intentStatus
	if status == "" {
		status = payments.IntentSucceeded
	}
	return payments.Intent{ID: id, Status: status}, nil
}

func (g *fakeGateway) CreateRefund(_ context.Context, paymentRef string) (payments.Refund, error) {
	g.refundCalls++
	status := g.refundStatus
	if status == "" {
		status = payments.RefundSucceeded
	}
	return payments.Refund{ID: "re_test", Status: status}, nil
}

type fakeMail struct {
	mu    sync.Mutex
	mails []notify.Mail
}

func (f *fakeMail) Enqueue(m notify.Mail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mails = append(f.mails, m)
}

func (f *fakeMail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.mails)
}

var bookingRowColumns = []string{
	"id", "user_id", "vehicle_id", "appointment_time", "status",
	"total_amount", "final_amount", "payment_status", "payment_intent_id",
}

func bookingRow(id, userID int64, status string, total float64, final any, payStatus string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingRowColumns).
		AddRow(id, userID, int64(1), time.Now(), status, total, final, payStatus, "")
}

func newBookingService(db *sql.DB, gw *fakeGateway, mail *fakeMail) BookingService {
	return BookingService{
		BookingRepo: repositories.BookingRepo{DB: db},
		VehicleRepo: repositories.VehicleRepo{DB: db},
		ServiceRepo: repositories.ServiceRepo{DB: db},
		UserRepo:    repositories.UserRepo{DB: db},
		Gateway:     gw,
		Mail:        mail,
	}
}

func TestCreatePaymentIntentRefusesUnpricedBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingPending, 0, nil, models.PaymentPending))

	gw := &fakeGateway{}
	svc := newBookingService(db, gw, &fakeMail{})

	_, err = svc.CreatePaymentIntent(context.Background(), 10, 1)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
	if gw.createCalls != 0 {
		t.Fatalf("gateway was called %d times for an unpriced booking", gw.createCalls)
	}
}

func TestCreatePaymentIntentUsesFinalAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// final amount 80.00 overrides the provisional 100.00
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingCompleted, 100.00, 80.00, models.PaymentPending))
	mock.ExpectExec("UPDATE bookings SET payment_intent_id").
		WithArgs("pi_test", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	gw := &fakeGateway{}
	svc := newBookingService(db, gw, &fakeMail{})

	secret, err := svc.CreatePaymentIntent(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	if secret != "cs_test" {
		t.Fatalf("client secret = %q", secret)
	}
	if gw.lastAmount != 8000 {
		t.Fatalf("charged %d minor units, want 8000", gw.lastAmount)
	}
	if gw.lastCurrency != "inr" {
		t.Fatalf("currency = %q, want inr", gw.lastCurrency)
	}
}

func TestCreatePaymentIntentOwnerOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingCompleted, 100.00, nil, models.PaymentPending))

	gw := &fakeGateway{}
	svc := newBookingService(db, gw, &fakeMail{})

	_, err = svc.CreatePaymentIntent(context.Background(), 99, 1)
	if !domain.IsPermissionDenied(err) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if gw.createCalls != 0 {
		t.Fatalf("gateway was called for a foreign booking")
	}
}

func TestVerifyPaymentAlreadyPaidIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingCompleted, 100.00, 80.00, models.PaymentPaid))

	gw := &fakeGateway{}
	mail := &fakeMail{}
	svc := newBookingService(db, gw, mail)

	booking, err := svc.VerifyPayment(context.Background(), 10, 1, "pi_test")
	if err != nil {
		t.Fatalf("re-verification failed: %v", err)
	}
	if booking.PaymentStatus != models.PaymentPaid {
		t.Fatalf("payment status = %q", booking.PaymentStatus)
	}
	if gw.retrieveCalls != 0 {
		t.Fatalf("gateway consulted %d times for an already-paid booking", gw.retrieveCalls)
	}
	if mail.count() != 0 {
		t.Fatalf("%d mails sent on re-verification, want 0", mail.count())
	}
}

func TestVerifyPaymentRejectsForeignIntent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the booking already carries its own intent reference
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(int64(1), int64(10), int64(1), time.Now(), models.BookingCompleted,
				100.00, 80.00, models.PaymentPending, "pi_mine"))

	gw := &fakeGateway{}
	svc := newBookingService(db, gw, &fakeMail{})

	_, err = svc.VerifyPayment(context.Background(), 10, 1, "pi_other")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for a foreign intent, got %v", err)
	}
	if gw.retrieveCalls != 0 {
		t.Fatalf("gateway consulted for a mismatched intent")
	}
	// no UPDATE expectation registered: a PAID transition would fail the mock
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalizeRequiresAmount(t *testing.T) {
	svc := BookingService{}
	_, err := svc.Finalize(1, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminUpdateToCompletedFiresHooks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingInProgress, 100.00, nil, models.PaymentPending))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingCompleted, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(bookingRow(1, 10, models.BookingCompleted, 100.00, nil, models.PaymentPending))

	fired := 0
	svc := newBookingService(db, &fakeGateway{}, &fakeMail{})
	svc.OnCompleted = []CompletionHook{func(b models.Booking) {
		fired++
		if b.EffectiveCharge() != 100.00 {
			t.Fatalf("hook saw charge %v, want 100.00", b.EffectiveCharge())
		}
	}}

	if _, err := svc.AdminUpdate(1, models.BookingCompleted, nil); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if fired != 1 {
		t.Fatalf("completion hooks fired %d times, want 1", fired)
	}
}
