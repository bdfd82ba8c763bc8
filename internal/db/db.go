package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path with foreign keys enforced.
// A single connection keeps writes serialized.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, db.Ping()
}

type migration struct {
	version int
	stmt    string
}

// The list is append-only; applied versions are recorded in
// schema_migrations and never re-run. The trailing ALTERs mirror columns
// that arrived after the initial schema.
var migrations = []migration{
	{1, `CREATE TABLE users(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`},
	{2, `CREATE TABLE sessions(
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL
	)`},
	{3, `CREATE TABLE posts(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id INTEGER NOT NULL REFERENCES users(id),
		display_author TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		like_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`},
	{4, `CREATE TABLE comments(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL REFERENCES users(id),
		display_author TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`},
	{5, `CREATE TABLE likes(
		user_id INTEGER NOT NULL REFERENCES users(id),
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		PRIMARY KEY(user_id, post_id)
	)`},
	{6, `ALTER TABLE users ADD COLUMN school TEXT NOT NULL DEFAULT ''`},
	{7, `ALTER TABLE posts ADD COLUMN view_count INTEGER NOT NULL DEFAULT 0`},
}

// Migrate applies pending migrations in order. Safe to call on every boot.
func Migrate(db *sql.DB) error {
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations(
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL
	)`)
	if err != nil {
		return err
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT IFNULL(MAX(version),0) FROM schema_migrations`).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, applied_at) VALUES(?,?)`,
			m.version, time.Now()); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
