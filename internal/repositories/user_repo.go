package repositories

import (
	"database/sql"
	"errors"

	intconfig "automart/internal/config"
	"automart/internal/domain"
	"automart/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	u.id,
	u.username,
	u.email,
	u.is_staff,
	u.is_superuser,
	COALESCE(p.is_mechanic, 0),
	COALESCE(p.is_billing, 0),
	COALESCE(p.is_ecommerce, 0)`

const userJoin = `
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.Roles.IsMechanic,
		&u.Roles.IsBilling,
		&u.Roles.IsEcommerce,
	)
	return u, err
}

// CreateWithProfile inserts the user and its profile row in one
// transaction so role flags can never be orphaned.
func (r UserRepo) CreateWithProfile(username, email, passwordHash string) (int64, error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO users (username, email, password_hash, is_staff, is_superuser)
		VALUES (?, ?, ?, 0, 0)
	`, username, email, passwordHash)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`INSERT INTO user_profiles (user_id) VALUES (?)`, id); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// GetByID fetches the user aggregate including role flags.
func (r UserRepo) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+userJoin+` WHERE u.id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// GetByLogin resolves a username or email and returns the stored
// password hash alongside the user.
func (r UserRepo) GetByLogin(login string) (models.User, string, error) {
	row := r.db().QueryRow(`
		SELECT `+userColumns+`, u.password_hash`+userJoin+`
		WHERE u.username = ? OR u.email = ?
		LIMIT 1
	`, login, login)

	var u models.User
	var hash string
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.Roles.IsMechanic,
		&u.Roles.IsBilling,
		&u.Roles.IsEcommerce,
		&hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	return u, hash, err
}

// GetByEmail is used by the password-reset request flow.
func (r UserRepo) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+userJoin+` WHERE u.email = ? LIMIT 1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// Exists reports whether a username or email is already registered.
func (r UserRepo) Exists(username, email string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE username = ? OR email = ?
	`, username, email).Scan(&n)
	return n > 0, err
}

func (r UserRepo) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db().Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// ListNonSuperusers backs the staff management screen.
func (r UserRepo) ListNonSuperusers() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT ` + userColumns + userJoin + `
		WHERE u.is_superuser = 0
		ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// ToggleStaff flips is_staff and returns the new value.
func (r UserRepo) ToggleStaff(id int64) (bool, error) {
	res, err := r.db().Exec(`UPDATE users SET is_staff = NOT is_staff WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, domain.NotFoundError{Resource: "user"}
	}

	var v bool
	err = r.db().QueryRow(`SELECT is_staff FROM users WHERE id = ?`, id).Scan(&v)
	return v, err
}

// ToggleProfileRole flips one of the specialist flags. The column name
// is whitelisted here, never taken from input directly.
func (r UserRepo) ToggleProfileRole(id int64, role string) error {
	var column string
	switch role {
	case "is_mechanic":
		column = "is_mechanic"
	case "is_billing":
		column = "is_billing"
	case "is_ecommerce":
		column = "is_ecommerce"
	default:
		return domain.ValidationError{Field: "role", Msg: "invalid role"}
	}

	db := r.db()
	// The profile row exists for every user created through the API;
	// INSERT IGNORE covers rows imported outside of it.
	if _, err := db.Exec(`INSERT IGNORE INTO user_profiles (user_id) VALUES (?)`, id); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE user_profiles SET `+column+` = NOT `+column+` WHERE user_id = ?`, id)
	return err
}

// EmailByID resolves the notification recipient for a user.
func (r UserRepo) EmailByID(id int64) (string, error) {
	var email string
	err := r.db().QueryRow(`SELECT email FROM users WHERE id = ?`, id).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NotFoundError{Resource: "user"}
	}
	return email, err
}
