package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, user_id, vehicle_id, appointment_time, status,
	total_amount, final_amount, payment_status,
	COALESCE(payment_intent_id, '')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var finalAmount sql.NullFloat64
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.VehicleID,
		&b.AppointmentTime,
		&b.Status,
		&b.TotalAmount,
		&finalAmount,
		&b.PaymentStatus,
		&b.PaymentIntentID,
	)
	if finalAmount.Valid {
		v := finalAmount.Float64
		b.FinalAmount = &v
	}
	return b, err
}

// Create inserts the booking and its service links in one transaction.
func (r BookingRepo) Create(b models.Booking) (int64, error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO bookings (user_id, vehicle_id, appointment_time, status, total_amount, payment_status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.UserID, b.VehicleID, b.AppointmentTime, models.BookingPending, 0.00, models.PaymentPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, sid := range b.ServiceIDs {
		if _, err := tx.Exec(`INSERT INTO booking_services (booking_id, service_id) VALUES (?, ?)`, id, sid); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

func (r BookingRepo) ListByUser(userID int64) ([]models.Booking, error) {
	return r.list(`WHERE user_id = ?`, userID)
}

func (r BookingRepo) ListAll() ([]models.Booking, error) {
	return r.list(``)
}

func (r BookingRepo) list(where string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings `+where+`
		ORDER BY appointment_time DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Finalize sets the authoritative amount and completes the booking in
// one statement so the two fields cannot drift apart.
func (r BookingRepo) Finalize(id int64, finalAmount float64) error {
	res, err := r.db().Exec(`
		UPDATE bookings SET final_amount = ?, status = ? WHERE id = ?
	`, finalAmount, models.BookingCompleted, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// SetPaymentIntent persists the gateway reference after a successful
// intent creation. Never driven by client-supplied values.
func (r BookingRepo) SetPaymentIntent(id int64, intentID string) error {
	res, err := r.db().Exec(`UPDATE bookings SET payment_intent_id = ? WHERE id = ?`, intentID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepo) SetPaymentStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE bookings SET payment_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// UpdateAdmin applies the staff booking editor: workflow status and/or
// the provisional bill.
func (r BookingRepo) UpdateAdmin(id int64, status string, totalAmount *float64) error {
	sets := ""
	args := []any{}
	if status != "" {
		sets = "status = ?"
		args = append(args, status)
	}
	if totalAmount != nil {
		if sets != "" {
			sets += ", "
		}
		sets += "total_amount = ?"
		args = append(args, *totalAmount)
	}
	if sets == "" {
		return domain.ValidationError{Msg: "nothing to update"}
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE bookings SET `+sets+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
