// internal/httpserver/routes_chirps.go
//
// Chirp endpoints. Reads are public; creating and deleting need a token,
// and only the author may delete.

package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/chirpy/internal/apperr"
)

type createChirpReq struct {
	Body string `json:"body"`
}

func (s *Server) mountChirpRoutes(r chi.Router) {
	r.Get("/chirps", s.handleListChirps)
	r.Get("/chirps/{chirpID}", s.handleGetChirp)
	r.With(s.requireToken).Post("/chirps", s.handleCreateChirp)
	r.With(s.requireToken).Delete("/chirps/{chirpID}", s.handleDeleteChirp)
}

func chirpID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "chirpID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: chirp id %q", apperr.ErrInvalidInput, raw)
	}
	return id, nil
}

func (s *Server) handleCreateChirp(w http.ResponseWriter, r *http.Request) {
	var req createChirpReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	c, err := s.deps.Chirps.Create(r.Context(), userID(r), req.Body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListChirps(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Chirps.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetChirp(w http.ResponseWriter, r *http.Request) {
	id, err := chirpID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	c, err := s.deps.Chirps.GetByID(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteChirp(w http.ResponseWriter, r *http.Request) {
	id, err := chirpID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.deps.Chirps.Delete(r.Context(), userID(r), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
