package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"campusboard/internal/auth"
	"campusboard/internal/models"
	"campusboard/internal/store"
	"campusboard/internal/validate"

	"go.uber.org/zap"
)

type Handler struct {
	store    *store.Store
	sessions *auth.Manager
	tokens   *auth.TokenIssuer
	log      *zap.Logger
}

func New(st *store.Store, sessions *auth.Manager, tokens *auth.TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{store: st, sessions: sessions, tokens: tokens, log: log}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("GET /posts", h.ListPosts)
	mux.HandleFunc("POST /posts", h.RequireAuth(h.CreatePost))
	mux.HandleFunc("GET /posts/{id}", h.GetPost)
	mux.HandleFunc("DELETE /posts/{id}", h.RequireAuth(h.DeletePost))
	mux.HandleFunc("POST /posts/{id}/comments", h.RequireAuth(h.CreateComment))
	mux.HandleFunc("POST /posts/{id}/like", h.RequireAuth(h.ToggleLike))

	mux.HandleFunc("GET /profile", h.RequireAuth(h.Profile))

	return h.withLogging(WithRecover(mux, h.log))
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: request body", validate.ErrInvalidFormat)
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// -------- Auth

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		School   string `json:"school"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}

	u, err := auth.Register(r.Context(), h.store.Users, auth.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		School:   in.School,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}

	u, err := auth.Authenticate(r.Context(), h.store.Users, in.Username, in.Password)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrBadCredential) {
		// One message for both, no username oracle.
		respondJSON(w, http.StatusUnauthorized, errorBody{"wrong username or password"})
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	h.sessions.DestroyAll(u.ID)
	if err := h.sessions.Create(w, u.ID); err != nil {
		respondError(w, err)
		return
	}
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// -------- Posts

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var posts []models.Post
	var err error
	switch {
	case q.Get("mine") == "1" || q.Get("liked") == "1":
		uid, ok := h.currentUserID(r)
		if !ok {
			respondJSON(w, http.StatusUnauthorized, errorBody{"authentication required"})
			return
		}
		if q.Get("mine") == "1" {
			posts, err = h.store.Posts.ListByAuthor(ctx, uid)
		} else {
			posts, err = h.store.Posts.ListLikedBy(ctx, uid)
		}
	default:
		posts, err = h.store.Posts.List(ctx)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFrom(r.Context())

	var in struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Anonymous bool   `json:"anonymous"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		respondError(w, fmt.Errorf("%w: title and content required", validate.ErrInvalidFormat))
		return
	}

	id, err := h.store.Posts.Create(r.Context(), uid, title, content, in.Anonymous)
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.store.Posts.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	ctx := r.Context()

	// Fire-and-forget, every read counts.
	_ = h.store.Posts.IncrementViews(ctx, id)

	p, err := h.store.Posts.Get(ctx, id)
	if err != nil {
		respondError(w, err)
		return
	}
	comments, err := h.store.Comments.ListForPost(ctx, id)
	if err != nil {
		respondError(w, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	liked := false
	if uid, ok := h.currentUserID(r); ok {
		liked, _ = h.store.Likes.Has(ctx, uid, id)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":     p,
		"comments": comments,
		"liked":    liked,
	})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.store.Posts.Delete(r.Context(), id, uid); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -------- Comments & likes

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFrom(r.Context())
	postID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in struct {
		Content   string `json:"content"`
		Anonymous bool   `json:"anonymous"`
	}
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		respondError(w, fmt.Errorf("%w: content required", validate.ErrInvalidFormat))
		return
	}

	id, err := h.store.Comments.Create(r.Context(), postID, uid, content, in.Anonymous)
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.store.Comments.ByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFrom(r.Context())
	postID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	liked, count, err := h.store.Likes.Toggle(r.Context(), uid, postID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"liked": liked, "likes": count})
}

// -------- Profile

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFrom(r.Context())
	ctx := r.Context()

	u, err := h.store.Users.ByID(ctx, uid)
	if err != nil {
		respondError(w, err)
		return
	}
	posts, err := h.store.Posts.ListByAuthor(ctx, uid)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": u, "posts": posts})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}
