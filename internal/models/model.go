package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	School       string    `json:"school,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post carries both identities: AuthorID is the true author and the only
// value consulted for authorization; DisplayAuthor is what other users see
// and may be the anonymous marker.
type Post struct {
	ID            int64     `json:"id"`
	AuthorID      int64     `json:"-"`
	DisplayAuthor string    `json:"author"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LikeCount     int64     `json:"likes"`
	ViewCount     int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
}

type Comment struct {
	ID            int64     `json:"id"`
	PostID        int64     `json:"post_id"`
	AuthorID      int64     `json:"-"`
	DisplayAuthor string    `json:"author"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

type Like struct {
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
