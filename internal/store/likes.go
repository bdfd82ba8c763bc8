package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Likes struct {
	db *sql.DB
}

// Toggle flips the (user, post) membership in the like ledger and moves the
// post's denormalized counter in the same transaction, so the two are never
// observable out of sync. Returns the new membership state and counter.
func (s *Likes) Toggle(ctx context.Context, userID, postID int64) (liked bool, count int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `SELECT like_count FROM posts WHERE id = ?`, postID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, ErrNotFound
	}
	if err != nil {
		return false, 0, err
	}

	var have int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID).Scan(&have)
	if err != nil {
		return false, 0, err
	}

	if have > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID); err != nil {
			return false, 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET like_count = like_count - 1 WHERE id = ?`, postID); err != nil {
			return false, 0, err
		}
		count--
		liked = false
	} else {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO likes(user_id,post_id,created_at) VALUES(?,?,?)`, userID, postID, time.Now()); err != nil {
			return false, 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET like_count = like_count + 1 WHERE id = ?`, postID); err != nil {
			return false, 0, err
		}
		count++
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// Has reports whether the user currently likes the post.
func (s *Likes) Has(ctx context.Context, userID, postID int64) (bool, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID).Scan(&n)
	return n > 0, err
}

// CountForPost counts ledger rows, the source of truth the denormalized
// counter must match.
func (s *Likes) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}
