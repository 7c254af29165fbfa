// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Spectrum backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/config", "/debug/cards".
//   - Table endpoints (token required except creation): mounted under /table.
//   - Live table stream: GET /table/ws (outside the request timeout).
//   - Match archive endpoints: /matches, /matches/{id}.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the table cookie works).
//   - One device holds one table; the token in its cookie names the table.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spectrum/apps/go-server/internal/archive"
	"github.com/robalobadob/spectrum/apps/go-server/internal/cards"
	"github.com/robalobadob/spectrum/apps/go-server/internal/config"
	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
	"github.com/robalobadob/spectrum/apps/go-server/internal/store"
	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

// Server bundles router, live table registry, card catalog and match archive.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	rules   game.Rules
	tables  store.Store
	cards   *cards.Catalog
	archive *archive.Store // nil disables archiving and /matches
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, cat *cards.Catalog, arch *archive.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		rules:   cfg.Rules(),
		tables:  st,
		cards:   cat,
		archive: arch,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Websocket stream: hijacks the connection, so no timeout or JSON header.
	s.r.With(s.requireTable(tokenFromQueryOrCookie)).Get("/table/ws", s.handleStream)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "spectrum-go",
				"endpoints": []string{
					"/health", "/config", "POST /table", "/table", "/table/ws", "/matches",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "tables": s.tables.Len()})
		})
		r.Get("/config", s.handleConfig)

		// Table: creation is open, everything else needs the table token.
		r.Route("/table", func(r chi.Router) {
			r.Post("/", s.handleCreateTable)
			r.Group(func(r chi.Router) {
				r.Use(s.requireTable(bearerOrCookie))
				s.mountTable(r)
			})
		})

		// Match archive
		s.mountMatches(r)

		// Debug: catalog contents
		r.Get("/debug/cards", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"count": s.cards.Len(), "cards": s.cards.All()})
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- config ------------------------------------

type configRes struct {
	MinPlayers         int              `json:"minPlayers"`
	MaxPlayers         int              `json:"maxPlayers"`
	ScoreOptions       []int            `json:"scoreOptions"`
	DefaultTargetScore int              `json:"defaultTargetScore"`
	TimerSeconds       int              `json:"timerSeconds"`
	Zones              []game.NamedZone `json:"zones"`
	Wraparound         bool             `json:"wraparound"`
	Modes              []game.Mode      `json:"modes"`
	Dial               game.Dial        `json:"dial"`
}

// handleConfig lists what the setup screen may offer.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configRes{
		MinPlayers:         s.rules.MinPlayers,
		MaxPlayers:         s.rules.MaxPlayers,
		ScoreOptions:       s.rules.ScoreOptions,
		DefaultTargetScore: s.cfg.DefaultTargetScore,
		TimerSeconds:       s.rules.TimerSeconds,
		Zones:              s.rules.Zones.Ordered(),
		Wraparound:         s.rules.Wraparound,
		Modes:              []game.Mode{game.ModeCompetitive, game.ModeParty},
		Dial:               game.DefaultDial,
	})
}

// ------------------------------- errors ------------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeErr maps domain errors onto HTTP statuses.
//
//	wrong phase / no session     → 409
//	bad input (count, clue, ...) → 400
//	unknown table or match       → 404
//	anything else                → 500
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, game.ErrWrongPhase):
		status, code = http.StatusConflict, "wrong_phase"
	case errors.Is(err, table.ErrNotInitialized):
		status, code = http.StatusConflict, "not_initialized"
	case errors.Is(err, game.ErrPlayerCount):
		status, code = http.StatusBadRequest, "player_count"
	case errors.Is(err, game.ErrTargetScore):
		status, code = http.StatusBadRequest, "target_score"
	case errors.Is(err, game.ErrEmptyClue):
		status, code = http.StatusBadRequest, "empty_clue"
	case errors.Is(err, game.ErrInvalidMode):
		status, code = http.StatusBadRequest, "invalid_mode"
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "table_not_found"
	case errors.Is(err, archive.ErrNotFound):
		status, code = http.StatusNotFound, "match_not_found"
	}
	ev := log.Warn()
	if status >= 500 {
		ev = log.Error()
	}
	ev.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	writeError(w, status, code)
}
