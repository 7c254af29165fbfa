package table

import (
	"github.com/robalobadob/spectrum/apps/go-server/internal/countdown"
	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
)

// RoundView is the active round as the presentation layer may see it.
// Target is nil while the guessers are looking at the screen.
type RoundView struct {
	Card           game.SpectrumCard `json:"spectrumCard"`
	Target         *float64          `json:"targetPosition,omitempty"`
	Clue           string            `json:"clue"`
	Guess          float64           `json:"guessPosition"`
	Points         int               `json:"pointsScored"`
	TimerRemaining int               `json:"timerRemaining"`
	Timer          string            `json:"timer"`
}

// Snapshot is a read-only copy of the table's session.
type Snapshot struct {
	ID                 string          `json:"id"`
	Phase              game.Phase      `json:"phase"`
	Mode               game.Mode       `json:"mode,omitempty"`
	Players            []game.Player   `json:"players"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	CurrentPlayer      *game.Player    `json:"currentPlayer,omitempty"`
	TargetScore        int             `json:"targetScore,omitempty"`
	Round              *RoundView      `json:"currentRound,omitempty"`
	RoundNumber        int             `json:"roundNumber"`
	UsedCards          []int           `json:"usedCards"`
	Outcome            *game.Outcome   `json:"outcome,omitempty"`
	Standings          []game.Standing `json:"standings,omitempty"`
	Winner             *game.Player    `json:"winner,omitempty"`
	Actions            []string        `json:"actions"`
}

// targetVisible: the clue-giver holds the device during clue-giving; the
// target is revealed again once guessing ends.
func targetVisible(p game.Phase) bool {
	return p == game.PhaseClueGiving || p == game.PhaseReveal || p == game.PhaseGameOver
}

var allActions = []string{"clue", "position", "guess", "next", "reset"}

func snapshotOf(id string, s game.Session) Snapshot {
	snap := Snapshot{
		ID:        id,
		Phase:     s.Phase,
		Players:   []game.Player{},
		UsedCards: []int{},
		Actions:   []string{},
	}
	if snap.Phase == "" {
		snap.Phase = game.PhaseSetup
	}
	for _, a := range allActions {
		if game.CanSubmit(snap.Phase, a) {
			snap.Actions = append(snap.Actions, a)
		}
	}
	if !s.Active() {
		return snap
	}

	snap.Mode = s.Mode
	snap.Players = append(snap.Players, s.Players...)
	snap.UsedCards = append(snap.UsedCards, s.UsedCards...)
	snap.CurrentPlayerIndex = s.CurrentPlayerIndex
	snap.RoundNumber = s.RoundNumber
	cur := s.CurrentPlayer()
	snap.CurrentPlayer = &cur
	if s.Mode == game.ModeCompetitive {
		snap.TargetScore = s.TargetScore
	}

	rv := RoundView{
		Card:           s.Round.Card,
		Clue:           s.Round.Clue,
		Guess:          s.Round.Guess,
		Points:         s.Round.Points,
		TimerRemaining: s.Round.TimerRemaining,
		Timer:          countdown.FormatTime(s.Round.TimerRemaining),
	}
	if targetVisible(s.Phase) {
		target := s.Round.Target
		rv.Target = &target
	}
	snap.Round = &rv

	if s.Phase == game.PhaseReveal || s.Phase == game.PhaseGameOver {
		out := game.ScoreOutcome(s.Round.Points)
		snap.Outcome = &out
		snap.Standings = game.Standings(s.Players)
	}
	if s.Phase == game.PhaseGameOver {
		if w, ok := game.Winner(s.Players, s.TargetScore); ok {
			snap.Winner = &w
		}
	}
	return snap
}
