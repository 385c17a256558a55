package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"automart/internal/domain/models"
	"automart/internal/repositories"
)

func newHistoryService(db *sql.DB) HistoryService {
	return HistoryService{
		HistoryRepo: repositories.HistoryRepo{DB: db},
		ServiceRepo: repositories.ServiceRepo{DB: db},
	}
}

func TestHistoryAppendsWithEffectiveCharge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	final := 80.00
	booking := models.Booking{
		ID:          1,
		UserID:      10,
		VehicleID:   5,
		TotalAmount: 100.00,
		FinalAmount: &final,
		Status:      models.BookingCompleted,
	}

	// the duplicate-check day must come from the database clock, not
	// the app clock
	mock.ExpectQuery("DATE\\(completion_date\\) = CURDATE\\(\\)").
		WithArgs(int64(10), int64(5), 80.00).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM booking_services").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Oil Change").AddRow("Brake Check"))
	mock.ExpectExec("INSERT INTO service_history").
		WithArgs(int64(10), int64(5), "Oil Change, Brake Check", 80.00, 0,
			"Auto-generated from Booking #1. Billing finalized.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	newHistoryService(db).OnBookingCompleted(booking)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHistoryFallsBackToTotalAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := models.Booking{
		ID:          2,
		UserID:      10,
		VehicleID:   5,
		TotalAmount: 150.00,
		Status:      models.BookingCompleted,
	}

	mock.ExpectQuery("FROM service_history").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM booking_services").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	// no linked services: generic label, provisional amount
	mock.ExpectExec("INSERT INTO service_history").
		WithArgs(int64(10), int64(5), "General Service", 150.00, 0,
			"Auto-generated from Booking #2. Billing finalized.").
		WillReturnResult(sqlmock.NewResult(2, 1))

	newHistoryService(db).OnBookingCompleted(booking)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHistorySuppressesDuplicateEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	final := 80.00
	booking := models.Booking{
		ID:          1,
		UserID:      10,
		VehicleID:   5,
		TotalAmount: 100.00,
		FinalAmount: &final,
		Status:      models.BookingCompleted,
	}

	mock.ExpectQuery("DATE\\(completion_date\\) = CURDATE\\(\\)").
		WithArgs(int64(10), int64(5), 80.00).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	newHistoryService(db).OnBookingCompleted(booking)

	// the only expectation was the duplicate check; an INSERT would
	// have failed the mock
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
