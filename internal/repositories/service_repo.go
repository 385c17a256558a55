package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type ServiceRepo struct {
	DB *sql.DB
}

func (r ServiceRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ServiceRepo) List() ([]models.Service, error) {
	rows, err := r.db().Query(`
		SELECT id, name, description, base_price
		FROM services
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Service{}
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r ServiceRepo) GetByID(id int64) (models.Service, error) {
	var s models.Service
	err := r.db().QueryRow(`
		SELECT id, name, description, base_price
		FROM services
		WHERE id = ? LIMIT 1
	`, id).Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Service{}, domain.NotFoundError{Resource: "service"}
	}
	return s, err
}

func (r ServiceRepo) Create(s models.Service) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO services (name, description, base_price)
		VALUES (?, ?, ?)
	`, s.Name, s.Description, s.BasePrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ServiceRepo) Update(s models.Service) error {
	res, err := r.db().Exec(`
		UPDATE services SET name = ?, description = ?, base_price = ? WHERE id = ?
	`, s.Name, s.Description, s.BasePrice, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "service"}
	}
	return nil
}

func (r ServiceRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "service"}
	}
	return nil
}

// NamesForBooking returns the names of the services linked to a
// booking, in catalog order. The history ledger joins these.
func (r ServiceRepo) NamesForBooking(bookingID int64) ([]string, error) {
	rows, err := r.db().Query(`
		SELECT s.name
		FROM booking_services bs
		JOIN services s ON s.id = bs.service_id
		WHERE bs.booking_id = ?
		ORDER BY s.id
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
