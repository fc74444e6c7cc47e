// internal/httpserver/server.go
//
// HTTP server wiring for the Chirpy backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, CORS, hit counter).
//   - API endpoints under /api: users, login, chirps, billing webhook, health.
//   - Admin endpoints under /admin: metrics page and counter reset.
//   - Static landing page under /app.
//   - Mapping of service errors to HTTP status codes.
//
// Notes:
//   - Handlers never put internal error text in a response body; it is logged
//     with the request id instead.
//   - PUT /api/users requires the presented token to be the user's current
//     session. The other authenticated routes only require a valid token.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/chirpy/internal/apperr"
	"github.com/robalobadob/chirpy/internal/auth"
	"github.com/robalobadob/chirpy/internal/chirps"
	"github.com/robalobadob/chirpy/internal/metrics"
	"github.com/robalobadob/chirpy/internal/users"
	"github.com/robalobadob/chirpy/internal/webhook"
)

const (
	// MetricsPath is not counted by the hit counter.
	MetricsPath = "/admin/metrics"

	defaultRequestTimeout = 10 * time.Second
	shutdownTimeout       = 5 * time.Second
	maxBodyBytes          = 1 << 20
)

// Deps are the collaborators a Server routes to. App may be nil, in which
// case /app is not mounted.
type Deps struct {
	Users  *users.Service
	Chirps *chirps.Service
	Guard  *auth.Guard
	Polka  *webhook.Polka
	Hits   *metrics.Counter
	App    fs.FS

	ClientOrigin   string
	RequestTimeout time.Duration
}

// Server bundles the router and its collaborators.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Hits == nil {
		d.Hits = metrics.NewCounter(MetricsPath)
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultRequestTimeout
	}
	if d.ClientOrigin == "" {
		d.ClientOrigin = "*"
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(requestIDLog)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.RequestTimeout))
	s.r.Use(d.Hits.Middleware) // ahead of cors so preflights are counted
	s.r.Use(cors(d.ClientOrigin))

	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/healthz", s.handleHealthz)
		r.Get("/reset", s.handleReset)
		s.mountUserRoutes(r)
		s.mountChirpRoutes(r)
		r.Post("/polka/webhooks", s.handlePolkaWebhook)
	})

	s.r.Route("/admin", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Post("/reset", s.handleReset)
	})

	if d.App != nil {
		s.mountApp(d.App)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully. A nil error means a clean shutdown.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("chirpy listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// requestIDLog adds chi's request id to the request logger and echoes it
// back in X-Request-Id.
func requestIDLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentType sets a default JSON Content-Type header on API responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single origin. Credentials are only advertised for a
// concrete origin since browsers refuse them alongside "*".
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ctxUserKey is the context key for the authenticated user id.
type ctxUserKey struct{}

// requireToken rejects requests without a valid bearer token.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.deps.Guard.Authenticate(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, id)))
	})
}

// requireSession additionally requires the token to be the user's current one.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _, err := s.deps.Guard.AuthenticateAndMatch(r.Context(), r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, id)))
	})
}

func userID(r *http.Request) int {
	id, _ := r.Context().Value(ctxUserKey{}).(int)
	return id
}

// ------------------------------- helpers -----------------------------------

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", apperr.ErrInvalidInput)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// handleError maps service errors to a status and a generic message.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrChirpTooLong):
		respondError(w, http.StatusBadRequest, "Chirp is too long")
	case errors.Is(err, apperr.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, apperr.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, apperr.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		respondError(w, http.StatusConflict, "email already in use")
	default:
		hlog.FromRequest(r).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	hlog.FromRequest(r).Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
}
