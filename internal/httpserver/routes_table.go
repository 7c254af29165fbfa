// apps/go-server/internal/httpserver/routes_table.go
//
// HTTP routes for the table bound to this device.
//   - POST   /table                → create + initialize a table, set the token cookie
//   - GET    /table                → current snapshot
//   - POST   /table/start          → start a new session on the same table
//   - POST   /table/clue           → submit the clue, opens guessing
//   - POST   /table/guess/position → move the guess marker to a 0–100 position
//   - POST   /table/guess/pointer  → move the guess marker to where a pointer points
//   - POST   /table/guess          → lock in the guess and score the round
//   - POST   /table/next           → end the reveal (next round or game over)
//   - POST   /table/reset          → back to setup
//   - DELETE /table                → drop the table and clear the cookie
//   - GET    /table/standings|history|dial
//
// Every mutating route responds with the resulting snapshot. Phase violations
// come back as 409.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spectrum/apps/go-server/internal/archive"
	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
	"github.com/robalobadob/spectrum/apps/go-server/internal/random"
	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

// mountTable registers the token-gated /table routes.
func (s *Server) mountTable(r chi.Router) {
	r.Get("/", s.handleSnapshot)
	r.Delete("/", s.handleDeleteTable)
	r.Post("/start", s.handleStart)
	r.Post("/clue", s.handleClue)
	r.Post("/guess/position", s.handleGuessPosition)
	r.Post("/guess/pointer", s.handleGuessPointer)
	r.Post("/guess", s.handleSubmitGuess)
	r.Post("/next", s.handleNext)
	r.Post("/reset", s.handleReset)
	r.Get("/standings", s.handleStandings)
	r.Get("/history", s.handleHistory)
	r.Get("/dial", s.handleDial)
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// -----------------------------------------------------------------------------
// creation

// setupReq is the payload for POST /table and POST /table/start.
type setupReq struct {
	Players     int    `json:"players"`
	TargetScore int    `json:"targetScore"`
	Mode        string `json:"mode"` // "competitive" (default) | "party"
	Seed        string `json:"seed"` // optional phrase for a reproducible deal
}

// normalize fills defaults and validates the mode.
func (s *Server) normalize(req setupReq) (setupReq, game.Mode, error) {
	if req.Mode == "" {
		req.Mode = string(game.ModeCompetitive)
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		return req, "", err
	}
	if req.Players == 0 {
		req.Players = s.rules.MinPlayers
	}
	if mode == game.ModeCompetitive && req.TargetScore == 0 {
		req.TargetScore = s.cfg.DefaultTargetScore
	}
	return req, mode, nil
}

// createRes is returned by POST /table.
type createRes struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	State     table.Snapshot `json:"state"`
}

// handleCreateTable builds a fresh table, registers it and binds it to the
// device. A table already bound to the device is dropped.
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req setupReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req, mode, err := s.normalize(req)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	t, err := s.newTable(req.Seed)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, err := t.Initialize(req.Players, req.TargetScore, mode)
	if err != nil {
		t.Close()
		writeErr(w, r, err)
		return
	}

	if old := bearerOrCookie(r, s.cfg.CookieName); old != "" {
		if id, err := s.parseTableToken(old); err == nil {
			_ = s.tables.Delete(r.Context(), id)
		}
	}
	if err := s.tables.Save(r.Context(), t); err != nil {
		t.Close()
		writeErr(w, r, err)
		return
	}

	tok, exp, err := s.signTableToken(t.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign table token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTableCookie(w, tok, exp)
	log.Info().Str("table", t.ID).Int("players", req.Players).Str("mode", string(mode)).
		Bool("seeded", req.Seed != "").Msg("table created")
	writeJSON(w, http.StatusCreated, createRes{Token: tok, ExpiresAt: exp, State: snap})
}

// newTable wires a table to its own random source and the archive.
func (s *Server) newTable(seed string) (*table.Table, error) {
	rng, err := random.Source(s.cfg.SeedSalt, seed)
	if err != nil {
		return nil, err
	}
	return table.New(table.Options{
		ID:           uuid.NewString(),
		Rules:        s.rules,
		Cards:        s.cards.All(),
		Rand:         rng,
		TickInterval: s.cfg.TickInterval,
		OnFinish:     s.archiveResult,
	})
}

// archiveResult records a finished competitive game. Failures are logged only.
func (s *Server) archiveResult(res table.Result) {
	if s.archive == nil {
		return
	}
	m := archive.FromResult(res)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.archive.InsertMatch(ctx, m); err != nil {
		log.Error().Err(err).Str("table", res.TableID).Msg("archive match")
		return
	}
	log.Info().Str("table", res.TableID).Str("match", m.ID).Str("winner", m.WinnerName).Msg("match archived")
}

// -----------------------------------------------------------------------------
// session actions

// respond writes snap, or the mapped error.
func respond(w http.ResponseWriter, r *http.Request, snap table.Snapshot, err error) {
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tableFrom(r.Context()).Snapshot())
}

// handleStart re-initializes the bound table (e.g. after reset or game over).
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req setupReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req, mode, err := s.normalize(req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, err := tableFrom(r.Context()).Initialize(req.Players, req.TargetScore, mode)
	respond(w, r, snap, err)
}

type clueReq struct {
	Clue string `json:"clue"`
}

func (s *Server) handleClue(w http.ResponseWriter, r *http.Request) {
	var req clueReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	snap, err := tableFrom(r.Context()).SubmitClue(req.Clue)
	respond(w, r, snap, err)
}

type positionReq struct {
	Position *float64 `json:"position"`
}

func (s *Server) handleGuessPosition(w http.ResponseWriter, r *http.Request) {
	var req positionReq
	if err := decodeBody(r, &req); err != nil || req.Position == nil {
		writeError(w, http.StatusBadRequest, "position_required")
		return
	}
	snap, err := tableFrom(r.Context()).SetGuessPosition(*req.Position)
	respond(w, r, snap, err)
}

type pointerReq struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s *Server) handleGuessPointer(w http.ResponseWriter, r *http.Request) {
	var req pointerReq
	if err := decodeBody(r, &req); err != nil || req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, "pointer_required")
		return
	}
	snap, err := tableFrom(r.Context()).SetGuessPointer(*req.X, *req.Y)
	respond(w, r, snap, err)
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	snap, err := tableFrom(r.Context()).SubmitGuess()
	respond(w, r, snap, err)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	snap, err := tableFrom(r.Context()).NextPlayer()
	respond(w, r, snap, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tableFrom(r.Context()).Reset())
}

// handleDeleteTable drops the table and clears the device's cookie.
func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r.Context())
	if err := s.tables.Delete(r.Context(), t.ID); err != nil {
		writeErr(w, r, err)
		return
	}
	s.clearTableCookie(w)
	log.Info().Str("table", t.ID).Msg("table deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// -----------------------------------------------------------------------------
// reads

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	st, err := tableFrom(r.Context()).Standings()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tableFrom(r.Context()).History())
}

func (s *Server) handleDial(w http.ResponseWriter, r *http.Request) {
	dv, err := tableFrom(r.Context()).Dial()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dv)
}
