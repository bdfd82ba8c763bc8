package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusboard/internal/models"
)

type Comments struct {
	db *sql.DB
}

// Create inserts a comment against an existing post; a missing post is
// ErrNotFound.
func (s *Comments) Create(ctx context.Context, postID, authorID int64, content string, anonymous bool) (int64, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, postID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	display, err := displayName(ctx, s.db, authorID, anonymous)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments(post_id,author_id,display_author,content,created_at) VALUES(?,?,?,?,?)`,
		postID, authorID, display, content, time.Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Comments) ByID(ctx context.Context, id int64) (models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRowContext(ctx,
		`SELECT id, post_id, author_id, display_author, content, created_at FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.PostID, &c.AuthorID, &c.DisplayAuthor, &c.Content, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, ErrNotFound
	}
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ListForPost returns the post's comments oldest-first.
func (s *Comments) ListForPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, display_author, content, created_at
		 FROM comments WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.DisplayAuthor, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountForPost reports how many comments a post has.
func (s *Comments) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}
