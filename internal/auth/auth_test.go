package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"campusboard/internal/db"
	"campusboard/internal/store"
	"campusboard/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbc, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Close() })
	require.NoError(t, db.Migrate(dbc))
	return dbc
}

func TestRegisterAndAuthenticate(t *testing.T) {
	dbc := newTestDB(t)
	users := store.New(dbc).Users
	ctx := context.Background()

	u, err := Register(ctx, users, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Passw0rd1",
		School:   "State University",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "State University", u.School)
	assert.NotEqual(t, "Passw0rd1", u.PasswordHash, "plaintext must not be stored")

	got, err := Authenticate(ctx, users, "alice", "Passw0rd1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	dbc := newTestDB(t)
	users := store.New(dbc).Users
	ctx := context.Background()

	_, err := Register(ctx, users, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "Passw0rd1",
	})
	require.NoError(t, err)

	_, err = Authenticate(ctx, users, "alice", "WrongPass1")
	assert.ErrorIs(t, err, store.ErrBadCredential)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	dbc := newTestDB(t)
	users := store.New(dbc).Users

	_, err := Authenticate(context.Background(), users, "nobody", "Passw0rd1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	dbc := newTestDB(t)
	users := store.New(dbc).Users
	ctx := context.Background()

	_, err := Register(ctx, users, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "Passw0rd1",
	})
	require.NoError(t, err)

	_, err = Register(ctx, users, RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "Passw0rd1",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate, "username taken")

	_, err = Register(ctx, users, RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "Passw0rd1",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate, "email taken")
}

func TestRegisterInvalidInput(t *testing.T) {
	dbc := newTestDB(t)
	users := store.New(dbc).Users
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "alice", Email: "not-an-email", Password: "Passw0rd1"},
		{Username: "alice", Email: "alice@example.com", Password: "short"},
		{Username: "alice", Email: "alice@example.com", Password: "alllowercase1"},
		{Username: "", Email: "alice@example.com", Password: "Passw0rd1"},
	}
	for _, in := range cases {
		_, err := Register(ctx, users, in)
		assert.True(t, errors.Is(err, validate.ErrInvalidFormat), "%+v", in)
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Passw0rd1")
	require.NoError(t, err)
	assert.True(t, CheckPassword("Passw0rd1", hash))
	assert.False(t, CheckPassword("Passw0rd2", hash))
}
