package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusboard/internal/models"
)

type Users struct {
	db *sql.DB
}

// Create inserts a new user and returns its id. A username or email that is
// already taken surfaces as ErrDuplicate.
func (s *Users) Create(ctx context.Context, username, email, passwordHash, school string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username,email,password_hash,school,created_at) VALUES(?,?,?,?,?)`,
		username, email, passwordHash, school, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Users) ByID(ctx context.Context, id int64) (models.User, error) {
	return s.get(ctx, `WHERE id = ?`, id)
}

func (s *Users) ByUsername(ctx context.Context, username string) (models.User, error) {
	return s.get(ctx, `WHERE username = ?`, username)
}

func (s *Users) get(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, school, created_at FROM users `+where, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.School, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
