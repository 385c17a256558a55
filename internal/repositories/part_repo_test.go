package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"automart/internal/domain"
)

var partTestColumns = []string{
	"id", "name", "brand", "model", "year", "description", "price", "stock",
}

func TestSellOneDecrementsStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartRepo{DB: db}

	mock.ExpectExec("UPDATE spare_parts SET stock").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM spare_parts WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(partTestColumns).
			AddRow(int64(3), "Brake Pad", "Bosch", "", "", "", 199.90, 4))

	part, err := repo.SellOne(3)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if part.Stock != 4 {
		t.Fatalf("stock after sale = %d, want 4", part.Stock)
	}
}

func TestSellOneOutOfStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartRepo{DB: db}

	// conditional decrement touches no row on an empty shelf
	mock.ExpectExec("UPDATE spare_parts SET stock").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM spare_parts WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(partTestColumns).
			AddRow(int64(3), "Brake Pad", "Bosch", "", "", "", 199.90, 0))

	_, err = repo.SellOne(3)
	if !domain.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient-stock error, got %v", err)
	}
}

func TestSellOneUnknownPart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := PartRepo{DB: db}

	mock.ExpectExec("UPDATE spare_parts SET stock").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM spare_parts WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(partTestColumns))

	_, err = repo.SellOne(404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
