package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusboard/internal/store"
	"campusboard/internal/validate"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the error taxonomy onto status codes. Anything outside
// the taxonomy is a generic 500 with no internals leaked.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalidFormat):
		respondJSON(w, http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		respondJSON(w, http.StatusConflict, errorBody{"username or email already taken"})
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{"not found"})
	case errors.Is(err, store.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorBody{"forbidden"})
	case errors.Is(err, store.ErrBadCredential):
		respondJSON(w, http.StatusUnauthorized, errorBody{"wrong username or password"})
	default:
		respondJSON(w, http.StatusInternalServerError, errorBody{"internal error"})
	}
}
