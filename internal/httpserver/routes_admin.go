// internal/httpserver/routes_admin.go
//
// Operational endpoints (health, hit counter) and the billing webhook.

package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/robalobadob/chirpy/internal/auth"
)

const metricsPage = `<html>
<body>
<h1>Welcome, Chirpy Admin</h1>
<p>Chirpy has been visited %d times!</p>
</body>
</html>
`

type polkaReq struct {
	Event string `json:"event"`
	Data  struct {
		UserID int `json:"user_id"`
	} `json:"data"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, metricsPage, s.deps.Hits.Hits())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.deps.Hits.Reset()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("File server hits counter reset."))
}

// handlePolkaWebhook checks the API key before reading the body, so an
// unauthenticated caller always gets 401 regardless of payload.
func (s *Server) handlePolkaWebhook(w http.ResponseWriter, r *http.Request) {
	key, err := auth.APIKey(r.Header)
	if err == nil {
		err = s.deps.Polka.Authorize(key)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req polkaReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.deps.Polka.HandleUserUpgraded(r.Context(), key, req.Event, req.Data.UserID); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mountApp serves the landing page bundle under /app. Directories without
// an index.html, such as /app/assets/, get a file listing.
func (s *Server) mountApp(app fs.FS) {
	files := http.StripPrefix("/app", http.FileServer(http.FS(app)))
	s.r.Get("/app", http.RedirectHandler("/app/", http.StatusMovedPermanently).ServeHTTP)
	s.r.Get("/app/*", files.ServeHTTP)
}
