// apps/go-server/internal/game/types.go
//
// Core type definitions for the Spectrum game engine.
// Defines:
//   - Phase / Mode: the session's finite state and scoring mode.
//   - Player, SpectrumCard, Round: the entities a session is built from.
//   - Session: the full state value transformed by Engine transitions.

package game

import "slices"

// Phase is the current step of a session's turn cycle.
//
//	clue-giving → guessing → reveal → clue-giving (next player)
//	reveal → game-over (competitive mode, once a player reaches the target)
//
// PhaseSetup marks the pre-initialization condition (no session yet, or after Reset).
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseClueGiving Phase = "clue-giving"
	PhaseGuessing   Phase = "guessing"
	PhaseReveal     Phase = "reveal"
	PhaseGameOver   Phase = "game-over"
)

// Mode selects whether scores accumulate toward a target.
type Mode string

const (
	ModeCompetitive Mode = "competitive"
	ModeParty       Mode = "party"
)

// ParseMode validates a mode string coming from the presentation layer.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCompetitive, ModeParty:
		return Mode(s), nil
	}
	return "", ErrInvalidMode
}

// Player is a seat at the table. ID and Color are fixed at creation.
type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

// SpectrumCard defines the two poles of the 0–100 scale.
// Left is position 0, Right is position 100.
type SpectrumCard struct {
	ID    int    `json:"id"`
	Left  string `json:"leftLabel"`
	Right string `json:"rightLabel"`
}

// Round is the active card plus everything placed on it during one turn.
type Round struct {
	Card           SpectrumCard `json:"spectrumCard"`
	Target         float64      `json:"targetPosition"`
	Clue           string       `json:"clue"`
	Guess          float64      `json:"guessPosition"`
	Points         int          `json:"pointsScored"`
	TimerRemaining int          `json:"timerRemaining"`
}

// Session is one play-through from Initialize until Reset.
// It is a plain value: Engine methods return a modified copy.
type Session struct {
	Phase              Phase    `json:"phase"`
	Mode               Mode     `json:"mode"`
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	TargetScore        int      `json:"targetScore"`
	Round              Round    `json:"currentRound"`
	RoundNumber        int      `json:"roundNumber"`
	UsedCards          []int    `json:"usedCards"`
}

// CurrentPlayer returns the player whose turn it is.
func (s Session) CurrentPlayer() Player {
	return s.Players[s.CurrentPlayerIndex]
}

// Active reports whether the session has been initialized.
func (s Session) Active() bool {
	return s.Phase != "" && s.Phase != PhaseSetup
}

// clone copies the slices so a returned session never aliases its input.
func (s Session) clone() Session {
	s.Players = slices.Clone(s.Players)
	s.UsedCards = slices.Clone(s.UsedCards)
	return s
}
