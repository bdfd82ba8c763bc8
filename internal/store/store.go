package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// AnonymousAuthor is the display name recorded when a post or comment is
// published anonymously. The real author id is stored alongside regardless.
const AnonymousAuthor = "anonymous"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrForbidden     = errors.New("forbidden")
	ErrBadCredential = errors.New("bad credential")
)

// Store bundles the table-level repositories over one database handle.
type Store struct {
	Users    *Users
	Posts    *Posts
	Comments *Comments
	Likes    *Likes
}

func New(db *sql.DB) *Store {
	return &Store{
		Users:    &Users{db: db},
		Posts:    &Posts{db: db},
		Comments: &Comments{db: db},
		Likes:    &Likes{db: db},
	}
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// displayName resolves the author string written into the display_author
// column. Returns ErrNotFound if the user does not exist.
func displayName(ctx context.Context, q rowQuerier, userID int64, anonymous bool) (string, error) {
	var username string
	err := q.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, userID).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if anonymous {
		return AnonymousAuthor, nil
	}
	return username, nil
}
