package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type HistoryRepo struct {
	DB *sql.DB
}

func (r HistoryRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const historyColumns = `
	id, user_id, vehicle_id, services_rendered, total_paid,
	odometer_reading, completion_date, COALESCE(admin_notes, '')`

func scanHistory(row interface{ Scan(...any) error }) (models.ServiceHistory, error) {
	var h models.ServiceHistory
	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.VehicleID,
		&h.ServicesRendered,
		&h.TotalPaid,
		&h.OdometerReading,
		&h.CompletionDate,
		&h.AdminNotes,
	)
	return h, err
}

// ExistsToday implements the duplicate-suppression check: one logical
// entry per (user, vehicle, completion date, amount). The day comes
// from CURDATE() so it is read on the same clock that stamps
// completion_date.
func (r HistoryRepo) ExistsToday(userID, vehicleID int64, totalPaid float64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*)
		FROM service_history
		WHERE user_id = ? AND vehicle_id = ? AND DATE(completion_date) = CURDATE() AND total_paid = ?
	`, userID, vehicleID, totalPaid).Scan(&n)
	return n > 0, err
}

func (r HistoryRepo) Insert(h models.ServiceHistory) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO service_history
			(user_id, vehicle_id, services_rendered, total_paid, odometer_reading, admin_notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, h.UserID, h.VehicleID, h.ServicesRendered, h.TotalPaid, h.OdometerReading, nullIfEmpty(h.AdminNotes))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r HistoryRepo) GetByID(id int64) (models.ServiceHistory, error) {
	row := r.db().QueryRow(`SELECT `+historyColumns+` FROM service_history WHERE id = ? LIMIT 1`, id)
	h, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceHistory{}, domain.NotFoundError{Resource: "service history"}
	}
	return h, err
}

func (r HistoryRepo) ListAll() ([]models.ServiceHistory, error) {
	return r.list(``)
}

func (r HistoryRepo) ListByUser(userID int64) ([]models.ServiceHistory, error) {
	return r.list(`WHERE user_id = ?`, userID)
}

func (r HistoryRepo) list(where string, args ...any) ([]models.ServiceHistory, error) {
	rows, err := r.db().Query(`
		SELECT `+historyColumns+`
		FROM service_history `+where+`
		ORDER BY completion_date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.ServiceHistory{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// Update lets staff correct the editable fields; the ledger row itself
// stays append-only from the lifecycle's point of view.
func (r HistoryRepo) Update(id int64, odometerReading *int, adminNotes *string) error {
	sets := ""
	args := []any{}
	if odometerReading != nil {
		sets = "odometer_reading = ?"
		args = append(args, *odometerReading)
	}
	if adminNotes != nil {
		if sets != "" {
			sets += ", "
		}
		sets += "admin_notes = ?"
		args = append(args, *adminNotes)
	}
	if sets == "" {
		return domain.ValidationError{Msg: "nothing to update"}
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE service_history SET `+sets+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "service history"}
	}
	return nil
}
