package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type PartRepo struct {
	DB *sql.DB
}

func (r PartRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const partColumns = `
	id, name,
	COALESCE(brand, ''),
	COALESCE(model, ''),
	COALESCE(year, ''),
	COALESCE(description, ''),
	price, stock`

func scanPart(row interface{ Scan(...any) error }) (models.SparePart, error) {
	var p models.SparePart
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Model, &p.Year, &p.Description, &p.Price, &p.Stock)
	return p, err
}

// List applies the storefront's advisory filters. Brand matches brand
// or name, mirroring the frontend's combined search box.
func (r PartRepo) List(f models.PartFilter) ([]models.SparePart, error) {
	query := `SELECT ` + partColumns + ` FROM spare_parts`
	where := ""
	args := []any{}

	if f.Brand != "" {
		where = " WHERE (brand LIKE ? OR name LIKE ?)"
		like := "%" + f.Brand + "%"
		args = append(args, like, like)
	}
	if f.Model != "" {
		if where == "" {
			where = " WHERE model LIKE ?"
		} else {
			where += " AND model LIKE ?"
		}
		args = append(args, "%"+f.Model+"%")
	}
	if f.Year != "" {
		if where == "" {
			where = " WHERE year LIKE ?"
		} else {
			where += " AND year LIKE ?"
		}
		args = append(args, "%"+f.Year+"%")
	}

	rows, err := r.db().Query(query+where+" ORDER BY id DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.SparePart{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r PartRepo) GetByID(id int64) (models.SparePart, error) {
	row := r.db().QueryRow(`SELECT `+partColumns+` FROM spare_parts WHERE id = ? LIMIT 1`, id)
	p, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SparePart{}, domain.NotFoundError{Resource: "spare part"}
	}
	return p, err
}

func (r PartRepo) Create(p models.SparePart) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO spare_parts (name, brand, model, year, description, price, stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Name, nullIfEmpty(p.Brand), nullIfEmpty(p.Model), nullIfEmpty(p.Year), nullIfEmpty(p.Description), p.Price, p.Stock)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PartRepo) Update(p models.SparePart) error {
	res, err := r.db().Exec(`
		UPDATE spare_parts
		SET name = ?, brand = ?, model = ?, year = ?, description = ?, price = ?, stock = ?
		WHERE id = ?
	`, p.Name, nullIfEmpty(p.Brand), nullIfEmpty(p.Model), nullIfEmpty(p.Year), nullIfEmpty(p.Description), p.Price, p.Stock, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "spare part"}
	}
	return nil
}

func (r PartRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM spare_parts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "spare part"}
	}
	return nil
}

// SellOne decrements stock by one for a counter sale. The decrement is
// conditional so stock never goes negative under concurrent sales.
func (r PartRepo) SellOne(id int64) (models.SparePart, error) {
	res, err := r.db().Exec(`
		UPDATE spare_parts SET stock = stock - 1 WHERE id = ? AND stock > 0
	`, id)
	if err != nil {
		return models.SparePart{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either unknown id or out of stock; look up to tell them apart.
		p, err := r.GetByID(id)
		if err != nil {
			return models.SparePart{}, err
		}
		return models.SparePart{}, domain.InsufficientStockError{Available: p.Stock}
	}
	return r.GetByID(id)
}
