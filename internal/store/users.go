package store

import (
	"database/sql"

	"github.com/chitramadarakhandi/minimart/internal/models"
)

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, role FROM users WHERE email = ?`
	row := s.DB.QueryRow(query, email)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(name, email, passwordHash, role string) error {
	query := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, name, email, passwordHash, role)
	return err
}

func (s *Store) CountCustomers() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'customer'`).Scan(&count)
	return count, err
}
