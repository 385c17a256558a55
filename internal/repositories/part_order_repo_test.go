package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"automart/internal/domain"
	"automart/internal/domain/models"
)

func TestMarkPaidDecrementsStockOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartOrderRepo{DB: db}

	// first verification: PENDING -> PAID with a stock decrement
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, part_id, quantity").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "part_id", "quantity"}).
			AddRow(models.PaymentPending, int64(3), 2))
	mock.ExpectExec("UPDATE spare_parts SET stock").
		WithArgs(2, int64(3), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE part_orders SET payment_status").
		WithArgs(models.PaymentPaid, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	alreadyPaid, err := repo.MarkPaidAndDecrementStock(7)
	if err != nil {
		t.Fatalf("first verification failed: %v", err)
	}
	if alreadyPaid {
		t.Fatalf("first verification reported alreadyPaid")
	}

	// second verification: row is PAID, no decrement runs at all
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, part_id, quantity").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "part_id", "quantity"}).
			AddRow(models.PaymentPaid, int64(3), 2))
	mock.ExpectCommit()

	alreadyPaid, err = repo.MarkPaidAndDecrementStock(7)
	if err != nil {
		t.Fatalf("second verification failed: %v", err)
	}
	if !alreadyPaid {
		t.Fatalf("second verification should report alreadyPaid")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPaidRefusesWhenStockRanOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartOrderRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, part_id, quantity").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "part_id", "quantity"}).
			AddRow(models.PaymentPending, int64(3), 5))
	// a concurrent sale emptied the shelf between checkout and payment
	mock.ExpectExec("UPDATE spare_parts SET stock").
		WithArgs(5, int64(3), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.MarkPaidAndDecrementStock(9)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartOrderRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payment_status, part_id, quantity").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "part_id", "quantity"}))
	mock.ExpectRollback()

	_, err = repo.MarkPaidAndDecrementStock(404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestOrderStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartOrderRepo{DB: db}

	mock.ExpectQuery("FROM part_orders").
		WithArgs(models.PaymentPaid, models.OrderCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1234.50))
	mock.ExpectQuery("FROM part_orders").
		WithArgs(models.OrderCancelled, models.OrderDelivered).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	revenue, active, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if revenue != 1234.50 {
		t.Fatalf("revenue = %v, want 1234.50", revenue)
	}
	if active != 4 {
		t.Fatalf("active = %d, want 4", active)
	}
}
