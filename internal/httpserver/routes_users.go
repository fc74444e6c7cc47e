// internal/httpserver/routes_users.go
//
// Account endpoints:
//   - POST /api/users   → register
//   - PUT  /api/users   → change email/password (current session only)
//   - POST /api/login   → issue a token; expires_in_seconds overrides the default lifetime

package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/model"
)

// maxExpiresInSeconds is the longest lifetime a time.Duration can hold.
const maxExpiresInSeconds = math.MaxInt64 / int64(time.Second)

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

type userRes struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	IsChirpyRed bool   `json:"is_chirpy_red"`
}

type updatedUserRes struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type loginRes struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Token       string `json:"token"`
	IsChirpyRed bool   `json:"is_chirpy_red"`
}

func newUserRes(u model.User) userRes {
	return userRes{ID: u.ID, Email: u.Email, IsChirpyRed: u.IsChirpyRed}
}

func (s *Server) mountUserRoutes(r chi.Router) {
	r.Post("/users", s.handleCreateUser)
	r.With(s.requireSession).Put("/users", s.handleUpdateUser)
	r.Post("/login", s.handleLogin)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	u, err := s.deps.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newUserRes(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	u, err := s.deps.Users.UpdateCredentials(r.Context(), userID(r), req.Email, req.Password)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updatedUserRes{ID: u.ID, Email: u.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	ttl, err := loginTTL(req.ExpiresInSeconds)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	u, tok, err := s.deps.Users.Login(r.Context(), req.Email, req.Password, ttl)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loginRes{ID: u.ID, Email: u.Email, Token: tok, IsChirpyRed: u.IsChirpyRed})
}

// loginTTL converts expires_in_seconds. Zero or negative falls back to the
// issuer's default lifetime; values past the Duration range are rejected.
func loginTTL(seconds int64) (time.Duration, error) {
	if seconds > maxExpiresInSeconds {
		return 0, fmt.Errorf("%w: expires_in_seconds %d out of range", apperr.ErrInvalidInput, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
