package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type PartOrderRepo struct {
	DB *sql.DB
}

func (r PartOrderRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const orderColumns = `
	id, user_id, part_id, quantity, vehicle_id,
	COALESCE(phone_number, ''),
	COALESCE(shipping_address, ''),
	status, payment_status,
	COALESCE(payment_intent_id, ''),
	total_price, created_at`

func scanOrder(row interface{ Scan(...any) error }) (models.PartOrder, error) {
	var o models.PartOrder
	var vehicleID sql.NullInt64
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.PartID,
		&o.Quantity,
		&vehicleID,
		&o.PhoneNumber,
		&o.ShippingAddress,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentIntentID,
		&o.TotalPrice,
		&o.CreatedAt,
	)
	if vehicleID.Valid {
		v := vehicleID.Int64
		o.VehicleID = &v
	}
	return o, err
}

func (r PartOrderRepo) Create(o models.PartOrder) (int64, error) {
	var vehicleID any
	if o.VehicleID != nil {
		vehicleID = *o.VehicleID
	}

	res, err := r.db().Exec(`
		INSERT INTO part_orders
			(user_id, part_id, quantity, vehicle_id, phone_number, shipping_address,
			 status, payment_status, payment_intent_id, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.UserID, o.PartID, o.Quantity, vehicleID,
		nullIfEmpty(o.PhoneNumber), nullIfEmpty(o.ShippingAddress),
		models.OrderPending, models.PaymentPending, o.PaymentIntentID, o.TotalPrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PartOrderRepo) GetByID(id int64) (models.PartOrder, error) {
	row := r.db().QueryRow(`SELECT `+orderColumns+` FROM part_orders WHERE id = ? LIMIT 1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PartOrder{}, domain.NotFoundError{Resource: "part order"}
	}
	return o, err
}

func (r PartOrderRepo) ListByUser(userID int64) ([]models.PartOrder, error) {
	return r.list(`WHERE user_id = ?`, userID)
}

func (r PartOrderRepo) ListAll() ([]models.PartOrder, error) {
	return r.list(``)
}

func (r PartOrderRepo) list(where string, args ...any) ([]models.PartOrder, error) {
	rows, err := r.db().Query(`
		SELECT `+orderColumns+`
		FROM part_orders `+where+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.PartOrder{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// MarkPaidAndDecrementStock records a succeeded payment exactly once.
// The whole read-modify-write runs in one transaction: the row lock on
// the order makes re-verification a no-op, and the conditional
// decrement keeps stock non-negative even when concurrent checkouts
// passed the earlier availability check.
//
// Returns alreadyPaid=true (and no error) when a previous call did the
// work; callers then skip side effects such as the confirmation mail.
func (r PartOrderRepo) MarkPaidAndDecrementStock(orderID int64) (alreadyPaid bool, err error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var paymentStatus string
	var partID int64
	var quantity int
	err = tx.QueryRow(`
		SELECT payment_status, part_id, quantity
		FROM part_orders
		WHERE id = ?
		FOR UPDATE
	`, orderID).Scan(&paymentStatus, &partID, &quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.NotFoundError{Resource: "part order"}
	}
	if err != nil {
		return false, err
	}

	if paymentStatus == models.PaymentPaid {
		return true, tx.Commit()
	}

	res, err := tx.Exec(`
		UPDATE spare_parts SET stock = stock - ? WHERE id = ? AND stock >= ?
	`, quantity, partID, quantity)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, domain.ConflictError{
			Resource: "spare part",
			Msg:      "insufficient stock at payment time",
		}
	}

	if _, err := tx.Exec(`
		UPDATE part_orders SET payment_status = ? WHERE id = ?
	`, models.PaymentPaid, orderID); err != nil {
		return false, err
	}

	return false, tx.Commit()
}

func (r PartOrderRepo) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE part_orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "part order"}
	}
	return nil
}

func (r PartOrderRepo) SetPaymentStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE part_orders SET payment_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "part order"}
	}
	return nil
}

// Stats aggregates the admin dashboard numbers: paid revenue excluding
// cancelled orders, and orders still moving through fulfilment.
func (r PartOrderRepo) Stats() (totalPaidRevenue float64, activeDistributions int, err error) {
	db := r.db()

	err = db.QueryRow(`
		SELECT COALESCE(SUM(total_price), 0)
		FROM part_orders
		WHERE payment_status = ? AND status <> ?
	`, models.PaymentPaid, models.OrderCancelled).Scan(&totalPaidRevenue)
	if err != nil {
		return 0, 0, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM part_orders
		WHERE status NOT IN (?, ?)
	`, models.OrderCancelled, models.OrderDelivered).Scan(&activeDistributions)
	if err != nil {
		return 0, 0, err
	}

	return totalPaidRevenue, activeDistributions, nil
}
