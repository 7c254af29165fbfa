// apps/go-server/internal/archive/store.go
//
// Record of finished competitive matches.
//
// A match is written once, when its table reaches game-over, and is only read
// back for display (recent matches, match detail). Nothing here is used to
// resume a game.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

// ErrNotFound is returned by Get for unknown match IDs.
var ErrNotFound = errors.New("match not found")

// Match is a finished game.
type Match struct {
	ID          string        `json:"id"`
	TableID     string        `json:"tableId"`
	Mode        string        `json:"mode"`
	TargetScore int           `json:"targetScore"`
	Rounds      int           `json:"rounds"`
	WinnerID    int           `json:"winnerId,omitempty"`
	WinnerName  string        `json:"winnerName,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	FinishedAt  time.Time     `json:"finishedAt"`
	Players     []MatchPlayer `json:"players"`
	RoundLog    []MatchRound  `json:"roundLog,omitempty"`
}

// MatchPlayer is a player's final standing.
type MatchPlayer struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// MatchRound is one scored round of a match.
type MatchRound struct {
	Number     int     `json:"number"`
	PlayerID   int     `json:"playerId"`
	CardID     int     `json:"cardId"`
	LeftLabel  string  `json:"leftLabel"`
	RightLabel string  `json:"rightLabel"`
	Clue       string  `json:"clue"`
	Target     float64 `json:"target"`
	Guess      float64 `json:"guess"`
	Points     int     `json:"points"`
	TimedOut   bool    `json:"timedOut"`
}

// FromResult converts a finished table into a Match with a fresh ID.
func FromResult(r table.Result) Match {
	s := r.Session
	m := Match{
		ID:          uuid.NewString(),
		TableID:     r.TableID,
		Mode:        string(s.Mode),
		TargetScore: s.TargetScore,
		Rounds:      len(r.Rounds),
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
	}
	if w, ok := game.Winner(s.Players, s.TargetScore); ok {
		m.WinnerID, m.WinnerName = w.ID, w.Name
	}
	for _, st := range game.Standings(s.Players) {
		m.Players = append(m.Players, MatchPlayer{
			PlayerID: st.ID, Name: st.Name, Color: st.Color, Score: st.Score, Rank: st.Rank,
		})
	}
	for _, rr := range r.Rounds {
		m.RoundLog = append(m.RoundLog, MatchRound{
			Number: rr.Number, PlayerID: rr.PlayerID, CardID: rr.CardID,
			LeftLabel: rr.LeftLabel, RightLabel: rr.RightLabel, Clue: rr.Clue,
			Target: rr.Target, Guess: rr.Guess, Points: rr.Points, TimedOut: rr.TimedOut,
		})
	}
	return m
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertMatch writes a match, its players and its rounds in one transaction.
func (s *Store) InsertMatch(ctx context.Context, m Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var winnerID any
	if m.WinnerID != 0 {
		winnerID = m.WinnerID
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO matches
            (id, table_id, mode, target_score, rounds, winner_id, winner_name, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.TableID, m.Mode, m.TargetScore, m.Rounds, winnerID, m.WinnerName,
		m.StartedAt.UTC().Format(time.RFC3339), m.FinishedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	for _, p := range m.Players {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO match_players (match_id, player_id, name, color, score, rank)
            VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, p.PlayerID, p.Name, p.Color, p.Score, p.Rank,
		); err != nil {
			return err
		}
	}
	for _, r := range m.RoundLog {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO match_rounds
                (match_id, number, player_id, card_id, left_label, right_label, clue, target, guess, points, timed_out)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, r.Number, r.PlayerID, r.CardID, r.LeftLabel, r.RightLabel, r.Clue,
			r.Target, r.Guess, r.Points, r.TimedOut,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns the latest matches with their final standings, newest first.
// Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, table_id, mode, target_score, rounds,
               COALESCE(winner_id, 0), COALESCE(winner_name, ''), started_at, finished_at
        FROM matches
        ORDER BY finished_at DESC, id
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Players, err = s.players(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get returns a match with its standings and round log.
func (s *Store) Get(ctx context.Context, id string) (Match, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, table_id, mode, target_score, rounds,
               COALESCE(winner_id, 0), COALESCE(winner_name, ''), started_at, finished_at
        FROM matches WHERE id=?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, ErrNotFound
	}
	if err != nil {
		return Match{}, err
	}
	if m.Players, err = s.players(ctx, id); err != nil {
		return Match{}, err
	}
	if m.RoundLog, err = s.rounds(ctx, id); err != nil {
		return Match{}, err
	}
	return m, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(sc scanner) (Match, error) {
	var m Match
	var started, finished string
	if err := sc.Scan(&m.ID, &m.TableID, &m.Mode, &m.TargetScore, &m.Rounds,
		&m.WinnerID, &m.WinnerName, &started, &finished); err != nil {
		return Match{}, err
	}
	m.StartedAt = mustParse(started)
	m.FinishedAt = mustParse(finished)
	return m, nil
}

func (s *Store) players(ctx context.Context, matchID string) ([]MatchPlayer, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, name, color, score, rank
        FROM match_players WHERE match_id=?
        ORDER BY rank ASC, player_id ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MatchPlayer{}
	for rows.Next() {
		var p MatchPlayer
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Color, &p.Score, &p.Rank); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) rounds(ctx context.Context, matchID string) ([]MatchRound, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT number, player_id, card_id, left_label, right_label, clue, target, guess, points, timed_out
        FROM match_rounds WHERE match_id=?
        ORDER BY number ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MatchRound{}
	for rows.Next() {
		var r MatchRound
		if err := rows.Scan(&r.Number, &r.PlayerID, &r.CardID, &r.LeftLabel, &r.RightLabel,
			&r.Clue, &r.Target, &r.Guess, &r.Points, &r.TimedOut); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
