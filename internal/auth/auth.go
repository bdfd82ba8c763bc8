package auth

import (
	"context"
	"strings"

	"campusboard/internal/models"
	"campusboard/internal/store"
	"campusboard/internal/validate"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	School   string
}

// Register validates the input, hashes the password and stores the user.
// Validation failures wrap validate.ErrInvalidFormat; a taken username or
// email surfaces as store.ErrDuplicate.
func Register(ctx context.Context, users *store.Users, in RegisterInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.School = strings.TrimSpace(in.School)

	if err := validate.Username(in.Username); err != nil {
		return models.User{}, err
	}
	if err := validate.Email(in.Email); err != nil {
		return models.User{}, err
	}
	if err := validate.Password(in.Password); err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	id, err := users.Create(ctx, in.Username, in.Email, hash, in.School)
	if err != nil {
		return models.User{}, err
	}
	return users.ByID(ctx, id)
}

// Authenticate checks username/password. An unknown username is
// store.ErrNotFound; a hash mismatch is store.ErrBadCredential.
func Authenticate(ctx context.Context, users *store.Users, username, password string) (models.User, error) {
	u, err := users.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return models.User{}, err
	}
	if !CheckPassword(password, u.PasswordHash) {
		return models.User{}, store.ErrBadCredential
	}
	return u, nil
}
