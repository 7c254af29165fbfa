// apps/go-server/internal/game/engine.go
//
// Session state machine for a single Spectrum table.
// Responsibilities:
//   - Create sessions (players, first round).
//   - Validate and apply the per-phase actions: clue, guess position, guess, next.
//   - Score the round and hand off to the turn controller at the end of a turn.
//
// Notes:
//   - Every method takes a Session by value and returns a new one; the input is
//     never modified, so a rejected action leaves the caller's state intact.
//   - Phase violations are returned as ErrWrongPhase rather than ignored.
//   - The engine owns its Dealer's random source and is not safe for
//     concurrent use; give each table its own.
package game

import (
	"fmt"
	"slices"
	"strings"
)

// Engine applies the game's transitions under a fixed set of Rules.
type Engine struct {
	rules  Rules
	scorer Scorer
	dealer *Dealer
}

// New constructs an Engine. Zero fields in rules fall back to DefaultRules.
func New(rules Rules, cards []SpectrumCard, rng Rand) (*Engine, error) {
	rules = rules.withDefaults()
	scorer, err := NewScorer(rules.Zones, rules.Wraparound)
	if err != nil {
		return nil, err
	}
	dealer, err := NewDealer(cards, rng, rules.TimerSeconds)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: rules, scorer: scorer, dealer: dealer}, nil
}

// Rules returns the configuration the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Scorer exposes the engine's scorer for previews.
func (e *Engine) Scorer() Scorer { return e.scorer }

// Initialize starts a new session with playerCount seats and the first round dealt.
func (e *Engine) Initialize(playerCount, targetScore int, mode Mode) (Session, error) {
	if playerCount < e.rules.MinPlayers || playerCount > e.rules.MaxPlayers {
		return Session{}, fmt.Errorf("%w: %d not in [%d,%d]",
			ErrPlayerCount, playerCount, e.rules.MinPlayers, e.rules.MaxPlayers)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return Session{}, err
	}
	if mode == ModeCompetitive && targetScore <= 0 {
		return Session{}, ErrTargetScore
	}

	round := e.dealer.NewRound(nil)
	return Session{
		Phase:       PhaseClueGiving,
		Mode:        mode,
		Players:     e.createPlayers(playerCount),
		TargetScore: targetScore,
		Round:       round,
		RoundNumber: 1,
		UsedCards:   []int{round.Card.ID},
	}, nil
}

func (e *Engine) createPlayers(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:    i + 1,
			Name:  fmt.Sprintf("Player %d", i+1),
			Color: e.rules.Palette[i%len(e.rules.Palette)],
		}
	}
	return players
}

// SubmitClue stores the clue-giver's clue and opens guessing.
func (e *Engine) SubmitClue(s Session, text string) (Session, error) {
	if s.Phase != PhaseClueGiving {
		return s, phaseErr("submit clue", s.Phase)
	}
	clue := strings.TrimSpace(text)
	if clue == "" {
		return s, ErrEmptyClue
	}
	s = s.clone()
	s.Round.Clue = clue
	s.Phase = PhaseGuessing
	return s, nil
}

// SetGuessPosition moves the guess marker. Called repeatedly while dragging.
func (e *Engine) SetGuessPosition(s Session, pos float64) (Session, error) {
	if s.Phase != PhaseGuessing {
		return s, phaseErr("set guess", s.Phase)
	}
	s = s.clone()
	s.Round.Guess = ClampPosition(pos)
	return s, nil
}

// SubmitGuess scores the round and moves to reveal. The countdown's timeout
// calls this too, with whatever guess was last set.
func (e *Engine) SubmitGuess(s Session) (Session, error) {
	if s.Phase != PhaseGuessing {
		return s, phaseErr("submit guess", s.Phase)
	}
	s = s.clone()
	points := e.scorer.Points(s.Round.Target, s.Round.Guess)
	if s.Mode == ModeCompetitive {
		s.Players[s.CurrentPlayerIndex].Score += points
	}
	s.Round.Points = points
	s.Phase = PhaseReveal
	return s, nil
}

// NextPlayer ends the reveal and either deals the next round or ends the game.
func (e *Engine) NextPlayer(s Session) (Session, error) {
	if s.Phase != PhaseReveal {
		return s, phaseErr("next player", s.Phase)
	}
	return e.advance(s.clone()), nil
}

// Reset discards the session. Valid from any phase.
func (e *Engine) Reset(Session) Session {
	return Session{Phase: PhaseSetup}
}

// Outcome is the reveal-screen result for the session's current round.
func (e *Engine) Outcome(s Session) Outcome {
	return ScoreOutcome(s.Round.Points)
}

// CanSubmit reports whether action is legal in phase p; the presentation layer
// uses it to decide which controls to show.
func CanSubmit(p Phase, action string) bool {
	allowed := map[Phase][]string{
		PhaseClueGiving: {"clue", "reset"},
		PhaseGuessing:   {"position", "guess", "reset"},
		PhaseReveal:     {"next", "reset"},
		PhaseGameOver:   {"reset"},
	}
	return slices.Contains(allowed[p], action)
}

func phaseErr(action string, p Phase) error {
	if p == "" {
		p = PhaseSetup
	}
	return fmt.Errorf("%s in %s: %w", action, p, ErrWrongPhase)
}
