package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusboard/internal/models"
)

type Posts struct {
	db *sql.DB
}

// Create inserts a post authored by authorID. When anonymous is set the
// stored display author is the anonymous marker instead of the username.
func (s *Posts) Create(ctx context.Context, authorID int64, title, content string, anonymous bool) (int64, error) {
	display, err := displayName(ctx, s.db, authorID, anonymous)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts(author_id,display_author,title,content,created_at) VALUES(?,?,?,?,?)`,
		authorID, display, title, content, time.Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Posts) Get(ctx context.Context, id int64) (models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT id, author_id, display_author, title, content, like_count, view_count, created_at
		 FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.AuthorID, &p.DisplayAuthor, &p.Title, &p.Content, &p.LikeCount, &p.ViewCount, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// List returns all posts most-recent-first. Ids are monotonic, so ordering
// by id descending is reverse chronological with insertion-order ties.
func (s *Posts) List(ctx context.Context) ([]models.Post, error) {
	return s.list(ctx,
		`SELECT id, author_id, display_author, title, content, like_count, view_count, created_at
		 FROM posts ORDER BY id DESC`)
}

func (s *Posts) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	return s.list(ctx,
		`SELECT id, author_id, display_author, title, content, like_count, view_count, created_at
		 FROM posts WHERE author_id = ? ORDER BY id DESC`, authorID)
}

func (s *Posts) ListLikedBy(ctx context.Context, userID int64) ([]models.Post, error) {
	return s.list(ctx,
		`SELECT p.id, p.author_id, p.display_author, p.title, p.content, p.like_count, p.view_count, p.created_at
		 FROM posts p JOIN likes l ON l.post_id = p.id
		 WHERE l.user_id = ? ORDER BY p.id DESC`, userID)
}

func (s *Posts) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.DisplayAuthor, &p.Title, &p.Content,
			&p.LikeCount, &p.ViewCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// IncrementViews bumps the view counter. Callers treat it as
// fire-and-forget; a read never fails because the counter didn't move.
func (s *Posts) IncrementViews(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// Delete removes a post together with its comments and like rows. Only the
// real author may delete; anyone else gets ErrForbidden.
func (s *Posts) Delete(ctx context.Context, id, actorID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var authorID int64
	err = tx.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = ?`, id).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if authorID != actorID {
		return ErrForbidden
	}

	// Comments and likes go with the post via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
