package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type VehicleRepo struct {
	DB *sql.DB
}

func (r VehicleRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepo) GetByID(id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`
		SELECT id, owner_id, make, model, year, COALESCE(license_plate, '')
		FROM vehicles
		WHERE id = ? LIMIT 1
	`, id).Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, err
}

func (r VehicleRepo) ListByOwner(ownerID int64) ([]models.Vehicle, error) {
	rows, err := r.db().Query(`
		SELECT id, owner_id, make, model, year, COALESCE(license_plate, '')
		FROM vehicles
		WHERE owner_id = ?
		ORDER BY id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r VehicleRepo) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (owner_id, make, model, year, license_plate)
		VALUES (?, ?, ?, ?, ?)
	`, v.OwnerID, v.Make, v.Model, v.Year, nullIfEmpty(v.LicensePlate))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update is owner-scoped; a mismatched owner behaves like not found so
// vehicle ids cannot be probed across accounts.
func (r VehicleRepo) Update(ownerID int64, v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles
		SET make = ?, model = ?, year = ?, license_plate = ?
		WHERE id = ? AND owner_id = ?
	`, v.Make, v.Model, v.Year, nullIfEmpty(v.LicensePlate), v.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func (r VehicleRepo) Delete(ownerID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
