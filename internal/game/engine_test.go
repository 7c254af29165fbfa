package game

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(DefaultRules(), testCards(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// playTurn drives clue → guess at pos → reveal.
func playTurn(t *testing.T, e *Engine, s Session, pos float64) Session {
	t.Helper()
	s, err := e.SubmitClue(s, "a clue")
	if err != nil {
		t.Fatalf("SubmitClue: %v", err)
	}
	if s, err = e.SetGuessPosition(s, pos); err != nil {
		t.Fatalf("SetGuessPosition: %v", err)
	}
	if s, err = e.SubmitGuess(s); err != nil {
		t.Fatalf("SubmitGuess: %v", err)
	}
	return s
}

func TestInitialize(t *testing.T) {
	e := newTestEngine(t, 1)
	s, err := e.Initialize(3, 20, ModeCompetitive)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if s.Phase != PhaseClueGiving {
		t.Fatalf("phase = %q, want clue-giving", s.Phase)
	}
	if len(s.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(s.Players))
	}
	for i, p := range s.Players {
		if p.ID != i+1 || p.Score != 0 || p.Color != PlayerColors[i] {
			t.Fatalf("player %d = %+v", i, p)
		}
	}
	if s.Players[2].Name != "Player 3" {
		t.Fatalf("name = %q, want Player 3", s.Players[2].Name)
	}
	if len(s.UsedCards) != 1 || s.UsedCards[0] != s.Round.Card.ID {
		t.Fatalf("usedCards = %v, want [%d]", s.UsedCards, s.Round.Card.ID)
	}
	if s.CurrentPlayerIndex != 0 || s.RoundNumber != 1 {
		t.Fatalf("index/round = %d/%d, want 0/1", s.CurrentPlayerIndex, s.RoundNumber)
	}
}

func TestInitializeRejectsBadArguments(t *testing.T) {
	e := newTestEngine(t, 1)
	cases := []struct {
		players, target int
		mode            Mode
		want            error
	}{
		{1, 20, ModeCompetitive, ErrPlayerCount},
		{5, 20, ModeCompetitive, ErrPlayerCount},
		{2, 0, ModeCompetitive, ErrTargetScore},
		{2, 20, Mode("solo"), ErrInvalidMode},
	}
	for _, c := range cases {
		if _, err := e.Initialize(c.players, c.target, c.mode); !errors.Is(err, c.want) {
			t.Fatalf("Initialize(%d, %d, %q) err = %v, want %v", c.players, c.target, c.mode, err, c.want)
		}
	}
	// Party mode ignores the target score.
	if _, err := e.Initialize(4, 0, ModeParty); err != nil {
		t.Fatalf("party with zero target: %v", err)
	}
}

func TestPaletteWraps(t *testing.T) {
	rules := DefaultRules()
	rules.MaxPlayers = 10
	rules.Palette = []string{"red", "blue"}
	e, err := New(rules, testCards(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, _ := e.Initialize(5, 10, ModeCompetitive)
	want := []string{"red", "blue", "red", "blue", "red"}
	for i, p := range s.Players {
		if p.Color != want[i] {
			t.Fatalf("player %d color = %q, want %q", i, p.Color, want[i])
		}
	}
}

func TestSubmitClueTrimsAndRejectsEmpty(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(2, 20, ModeCompetitive)

	if _, err := e.SubmitClue(s, "   \t"); !errors.Is(err, ErrEmptyClue) {
		t.Fatalf("err = %v, want ErrEmptyClue", err)
	}
	next, err := e.SubmitClue(s, "  lukewarm tea ")
	if err != nil {
		t.Fatalf("SubmitClue: %v", err)
	}
	if next.Round.Clue != "lukewarm tea" {
		t.Fatalf("clue = %q, want trimmed", next.Round.Clue)
	}
	if next.Phase != PhaseGuessing {
		t.Fatalf("phase = %q, want guessing", next.Phase)
	}
	if s.Phase != PhaseClueGiving || s.Round.Clue != "" {
		t.Fatalf("input session was modified: %+v", s)
	}
}

func TestSetGuessPositionClamps(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(2, 20, ModeCompetitive)
	s, _ = e.SubmitClue(s, "clue")

	for in, want := range map[float64]float64{-20: 0, 33.3: 33.3, 250: 100} {
		got, err := e.SetGuessPosition(s, in)
		if err != nil {
			t.Fatalf("SetGuessPosition(%v): %v", in, err)
		}
		if got.Round.Guess != want {
			t.Fatalf("guess = %v, want %v", got.Round.Guess, want)
		}
		if got.Phase != PhaseGuessing {
			t.Fatalf("phase changed to %q", got.Phase)
		}
	}
}

func TestWrongPhaseIsRejected(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(2, 20, ModeCompetitive)

	if _, err := e.SubmitGuess(s); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("SubmitGuess in clue-giving: err = %v", err)
	}
	if _, err := e.SetGuessPosition(s, 10); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("SetGuessPosition in clue-giving: err = %v", err)
	}
	if _, err := e.NextPlayer(s); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("NextPlayer in clue-giving: err = %v", err)
	}

	s = playTurn(t, e, s, 50)
	if _, err := e.SubmitClue(s, "late"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("SubmitClue in reveal: err = %v", err)
	}
	if _, err := e.SubmitClue(Session{}, "x"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("SubmitClue before init: err = %v", err)
	}
}

func TestSubmitGuessScoresActingPlayer(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(3, 20, ModeCompetitive)
	s = playTurn(t, e, s, s.Round.Target)

	if s.Phase != PhaseReveal {
		t.Fatalf("phase = %q, want reveal", s.Phase)
	}
	if s.Round.Points != 4 || s.Players[0].Score != 4 {
		t.Fatalf("points=%d score=%d, want 4/4", s.Round.Points, s.Players[0].Score)
	}
	if s.Players[1].Score != 0 || s.Players[2].Score != 0 {
		t.Fatalf("other players scored: %+v", s.Players)
	}
	if got := e.Outcome(s).Label; got != "BULLSEYE!" {
		t.Fatalf("label = %q", got)
	}
}

func TestUntouchedGuessUsesMidpoint(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(2, 20, ModeCompetitive)
	s, _ = e.SubmitClue(s, "clue")
	s, err := e.SubmitGuess(s)
	if err != nil {
		t.Fatalf("SubmitGuess: %v", err)
	}
	want := e.Scorer().Points(s.Round.Target, 50)
	if s.Round.Guess != 50 || s.Round.Points != want {
		t.Fatalf("guess=%v points=%d, want 50/%d", s.Round.Guess, s.Round.Points, want)
	}
}

func TestAdvanceCyclesPlayers(t *testing.T) {
	e := newTestEngine(t, 2)
	s, _ := e.Initialize(4, 100, ModeCompetitive)
	start := s.CurrentPlayerIndex
	for i := 0; i < 4; i++ {
		s = playTurn(t, e, s, 0) // targets are ≥20 away from 0: always a miss
		var err error
		if s, err = e.NextPlayer(s); err != nil {
			t.Fatalf("NextPlayer: %v", err)
		}
		if s.Phase != PhaseClueGiving {
			t.Fatalf("phase = %q, want clue-giving", s.Phase)
		}
	}
	if s.CurrentPlayerIndex != start {
		t.Fatalf("index after full rotation = %d, want %d", s.CurrentPlayerIndex, start)
	}
	if len(s.UsedCards) != 5 || s.RoundNumber != 5 {
		t.Fatalf("usedCards=%v round=%d, want 5 entries / round 5", s.UsedCards, s.RoundNumber)
	}
}

func TestPartyModeNeverScoresOrEnds(t *testing.T) {
	e := newTestEngine(t, 3)
	s, _ := e.Initialize(4, 1, ModeParty)
	for i := 0; i < 50; i++ {
		s = playTurn(t, e, s, s.Round.Target)
		if s.Round.Points != 4 {
			t.Fatalf("round %d points = %d, want 4", i, s.Round.Points)
		}
		var err error
		if s, err = e.NextPlayer(s); err != nil {
			t.Fatalf("NextPlayer: %v", err)
		}
		if s.Phase == PhaseGameOver {
			t.Fatalf("party mode reached game-over at round %d", i)
		}
	}
	for _, p := range s.Players {
		if p.Score != 0 {
			t.Fatalf("party mode changed score: %+v", p)
		}
	}
}

func TestCompetitiveGameEndsOnTarget(t *testing.T) {
	e := newTestEngine(t, 4)
	s, _ := e.Initialize(4, 50, ModeCompetitive)

	var err error
	for turn := 0; ; turn++ {
		if turn > 100 {
			t.Fatal("game never ended")
		}
		// Player 1 always hits the bullseye, everyone else misses.
		pos := 0.0
		if s.CurrentPlayerIndex == 0 {
			pos = s.Round.Target
		}
		s = playTurn(t, e, s, pos)
		reached := s.Players[0].Score >= 50
		rounds := s.RoundNumber

		if s, err = e.NextPlayer(s); err != nil {
			t.Fatalf("NextPlayer: %v", err)
		}
		if reached {
			if s.Phase != PhaseGameOver {
				t.Fatalf("phase = %q after reaching target, want game-over", s.Phase)
			}
			if s.RoundNumber != rounds {
				t.Fatalf("a new round was dealt after game-over")
			}
			break
		}
		if s.Phase != PhaseClueGiving {
			t.Fatalf("phase = %q before target, want clue-giving", s.Phase)
		}
	}
	if s.Players[0].Score != 52 {
		t.Fatalf("winner score = %d, want 52 (13 bullseyes)", s.Players[0].Score)
	}
	w, ok := Winner(s.Players, s.TargetScore)
	if !ok || w.ID != 1 {
		t.Fatalf("winner = %+v, %v", w, ok)
	}
	if _, err := e.NextPlayer(s); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("NextPlayer after game-over: err = %v", err)
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, 1)
	s, _ := e.Initialize(2, 20, ModeCompetitive)
	s = playTurn(t, e, s, 50)
	s = e.Reset(s)
	if s.Active() || s.Phase != PhaseSetup || len(s.Players) != 0 {
		t.Fatalf("reset left state behind: %+v", s)
	}
	if _, err := e.SubmitGuess(s); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("SubmitGuess after reset: err = %v", err)
	}
}

func TestWinnerListOrder(t *testing.T) {
	players := []Player{{ID: 1, Score: 3}, {ID: 2, Score: 12}, {ID: 3, Score: 15}}
	w, ok := Winner(players, 12)
	if !ok || w.ID != 2 {
		t.Fatalf("winner = %+v, want player 2", w)
	}
	if _, ok := Winner(players, 20); ok {
		t.Fatal("unexpected winner below target")
	}
}

func TestCanSubmit(t *testing.T) {
	if !CanSubmit(PhaseGuessing, "position") || CanSubmit(PhaseReveal, "guess") {
		t.Fatal("unexpected legality table")
	}
	if !CanSubmit(PhaseGameOver, "reset") || CanSubmit(PhaseSetup, "clue") {
		t.Fatal("unexpected legality for reset/setup")
	}
}
