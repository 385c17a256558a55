package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type DentingRepo struct {
	DB *sql.DB
}

func (r DentingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const dentingColumns = `
	id, user_id, description, vehicle_make, vehicle_model,
	status, estimated_price, created_at`

func scanDenting(row interface{ Scan(...any) error }) (models.DentingRequest, error) {
	var d models.DentingRequest
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Description,
		&d.VehicleMake,
		&d.VehicleModel,
		&d.Status,
		&d.EstimatedPrice,
		&d.CreatedAt,
	)
	return d, err
}

func (r DentingRepo) Create(d models.DentingRequest) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO denting_requests (user_id, description, vehicle_make, vehicle_model, status)
		VALUES (?, ?, ?, ?, ?)
	`, d.UserID, d.Description, d.VehicleMake, d.VehicleModel, models.DentingPendingReview)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DentingRepo) GetByID(id int64) (models.DentingRequest, error) {
	row := r.db().QueryRow(`SELECT `+dentingColumns+` FROM denting_requests WHERE id = ? LIMIT 1`, id)
	d, err := scanDenting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DentingRequest{}, domain.NotFoundError{Resource: "denting request"}
	}
	return d, err
}

func (r DentingRepo) ListByUser(userID int64) ([]models.DentingRequest, error) {
	return r.list(`WHERE user_id = ?`, userID)
}

func (r DentingRepo) ListAll() ([]models.DentingRequest, error) {
	return r.list(``)
}

func (r DentingRepo) list(where string, args ...any) ([]models.DentingRequest, error) {
	rows, err := r.db().Query(`
		SELECT `+dentingColumns+`
		FROM denting_requests `+where+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.DentingRequest{}
	for rows.Next() {
		d, err := scanDenting(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Review applies the staff estimate and status in one statement.
func (r DentingRepo) Review(id int64, status string, estimatedPrice *float64) error {
	sets := ""
	args := []any{}
	if status != "" {
		sets = "status = ?"
		args = append(args, status)
	}
	if estimatedPrice != nil {
		if sets != "" {
			sets += ", "
		}
		sets += "estimated_price = ?"
		args = append(args, *estimatedPrice)
	}
	if sets == "" {
		return domain.ValidationError{Msg: "nothing to update"}
	}

	args = append(args, id)
	res, err := r.db().Exec(`UPDATE denting_requests SET `+sets+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "denting request"}
	}
	return nil
}
