// apps/go-server/internal/httpserver/routes_matches.go
//
// HTTP routes for finished competitive matches.
//   - GET /matches       → most recent matches with final standings (?limit=, max 100)
//   - GET /matches/{id}  → one match with its round log
//
// Both answer 503 when the server runs without an archive.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxMatchLimit = 100

// mountMatches registers the /matches routes.
func (s *Server) mountMatches(r chi.Router) {
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", s.handleRecentMatches)
		r.Get("/{id}", s.handleMatch)
	})
}

// recentRes is returned by GET /matches.
type recentRes struct {
	Matches any `json:"matches"`
}

func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive_disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxMatchLimit)
	}
	ms, err := s.archive.Recent(r.Context(), limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recentRes{Matches: ms})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive_disabled")
		return
	}
	m, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
