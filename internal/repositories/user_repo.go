package repositories

import (
	"database/sql"

	"jombo/internal/db"
	"jombo/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, language, COALESCE(picture, ''), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Language, &u.Picture, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByEmail also returns the stored password hash for login checks.
func (r UserRepo) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.DB.QueryRow(`
		SELECT `+userColumns+`, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Language, &u.Picture, &u.CreatedAt, &u.UpdatedAt, &hash)
	return u, hash, err
}

func (r UserRepo) EmailExists(email string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (r UserRepo) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (email, password_hash, name, language, picture)
		VALUES (?, ?, ?, ?, ?)`,
		u.Email, passwordHash, u.Name, u.Language, db.NullIfEmpty(u.Picture))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProfile changes the mutable profile fields only.
func (r UserRepo) UpdateProfile(u models.User) error {
	_, err := r.DB.Exec(`
		UPDATE users SET name = ?, language = ?, picture = ? WHERE id = ?`,
		u.Name, u.Language, db.NullIfEmpty(u.Picture), u.ID)
	return err
}
