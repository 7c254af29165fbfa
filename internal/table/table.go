// apps/go-server/internal/table/table.go
//
// A Table is one device's game: the single owner of a session value, the
// engine that transforms it, and the countdown that can end a guess.
//
// Responsibilities:
//   - Serialize actions from the HTTP layer and the countdown (one mutex).
//   - Start the countdown when guessing opens; stop it on submit, next round
//     and reset. A timeout submits whatever guess was last set.
//   - Keep a per-round history and report the finished game once.
//   - Fan out state and tick events to subscribers.

package table

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spectrum/apps/go-server/internal/countdown"
	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
)

// RoundRecord is one scored round.
type RoundRecord struct {
	Number     int     `json:"number"`
	PlayerID   int     `json:"playerId"`
	PlayerName string  `json:"playerName"`
	CardID     int     `json:"cardId"`
	LeftLabel  string  `json:"leftLabel"`
	RightLabel string  `json:"rightLabel"`
	Clue       string  `json:"clue"`
	Target     float64 `json:"target"`
	Guess      float64 `json:"guess"`
	Points     int     `json:"points"`
	TimedOut   bool    `json:"timedOut"`
}

// Result is handed to OnFinish when a competitive game reaches game-over.
type Result struct {
	TableID    string
	Session    game.Session
	Rounds     []RoundRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// Options configures a Table.
type Options struct {
	ID           string
	Rules        game.Rules
	Cards        []game.SpectrumCard
	Rand         game.Rand
	TickInterval time.Duration
	Dial         game.Dial
	// OnFinish runs once per game, outside the table lock.
	OnFinish func(Result)
}

// ErrNotInitialized is returned by reads that need a running session.
var ErrNotInitialized = errors.New("table has no session")

// Table owns one session.
type Table struct {
	ID string

	engine   *game.Engine
	timer    *countdown.Timer
	dial     game.Dial
	onFinish func(Result)

	mu        sync.Mutex
	state     game.Session
	history   []RoundRecord
	startedAt time.Time
	finished  bool
	subs      map[chan Event]struct{}
	closed    bool
}

// New builds an empty table (phase setup).
func New(opts Options) (*Table, error) {
	engine, err := game.New(opts.Rules, opts.Cards, opts.Rand)
	if err != nil {
		return nil, err
	}
	dial := opts.Dial
	if dial.Radius == 0 {
		dial = game.DefaultDial
	}
	t := &Table{
		ID:       opts.ID,
		engine:   engine,
		timer:    countdown.New(opts.TickInterval),
		dial:     dial,
		onFinish: opts.OnFinish,
		subs:     make(map[chan Event]struct{}),
	}
	t.state = engine.Reset(game.Session{})
	return t, nil
}

// Rules returns the rules the table plays under.
func (t *Table) Rules() game.Rules { return t.engine.Rules() }

// Initialize starts a new session, replacing any current one.
func (t *Table) Initialize(players, targetScore int, mode game.Mode) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.engine.Initialize(players, targetScore, mode)
	if err != nil {
		return t.snapshotLocked(), err
	}
	t.timer.Stop()
	t.history = nil
	t.finished = false
	t.startedAt = time.Now().UTC()
	t.commitLocked(s)
	log.Debug().Str("table", t.ID).Int("players", players).Int("target", targetScore).
		Str("mode", string(mode)).Msg("session initialized")
	return t.snapshotLocked(), nil
}

// SubmitClue records the clue and starts the guessing countdown.
func (t *Table) SubmitClue(text string) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.engine.SubmitClue(t.state, text)
	if err != nil {
		return t.snapshotLocked(), err
	}
	t.commitLocked(s)
	round := s.RoundNumber
	t.timer.Start(t.engine.Rules().TimerSeconds,
		func(remaining int) { t.tick(round, remaining) },
		func() { t.expire(round) })
	log.Debug().Str("table", t.ID).Int("round", round).Msg("clue submitted")
	return t.snapshotLocked(), nil
}

// SetGuessPosition moves the guess marker.
func (t *Table) SetGuessPosition(pos float64) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.engine.SetGuessPosition(t.state, pos)
	if err != nil {
		return t.snapshotLocked(), err
	}
	t.commitLocked(s)
	return t.snapshotLocked(), nil
}

// SetGuessPointer moves the guess marker to where a pointer at (x, y) points.
func (t *Table) SetGuessPointer(x, y float64) (Snapshot, error) {
	return t.SetGuessPosition(t.dial.PointerToPosition(x, y))
}

// SubmitGuess scores the round.
func (t *Table) SubmitGuess() (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.submitLocked(false); err != nil {
		return t.snapshotLocked(), err
	}
	return t.snapshotLocked(), nil
}

func (t *Table) submitLocked(timedOut bool) error {
	s, err := t.engine.SubmitGuess(t.state)
	if err != nil {
		return err
	}
	t.timer.Stop()
	p := s.CurrentPlayer()
	t.history = append(t.history, RoundRecord{
		Number:     s.RoundNumber,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		CardID:     s.Round.Card.ID,
		LeftLabel:  s.Round.Card.Left,
		RightLabel: s.Round.Card.Right,
		Clue:       s.Round.Clue,
		Target:     s.Round.Target,
		Guess:      s.Round.Guess,
		Points:     s.Round.Points,
		TimedOut:   timedOut,
	})
	t.commitLocked(s)
	log.Debug().Str("table", t.ID).Int("round", s.RoundNumber).Int("player", p.ID).
		Int("points", s.Round.Points).Bool("timedOut", timedOut).Msg("guess scored")
	return nil
}

// NextPlayer ends the reveal: next round, or game-over.
func (t *Table) NextPlayer() (Snapshot, error) {
	t.mu.Lock()
	s, err := t.engine.NextPlayer(t.state)
	if err != nil {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, err
	}
	t.timer.Stop()
	t.commitLocked(s)

	var result *Result
	if s.Phase == game.PhaseGameOver && !t.finished {
		t.finished = true
		result = &Result{
			TableID:    t.ID,
			Session:    s,
			Rounds:     append([]RoundRecord(nil), t.history...),
			StartedAt:  t.startedAt,
			FinishedAt: time.Now().UTC(),
		}
		log.Info().Str("table", t.ID).Int("rounds", len(t.history)).Msg("game over")
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if result != nil && t.onFinish != nil {
		t.onFinish(*result)
	}
	return snap, nil
}

// Reset discards the session and stops any countdown.
func (t *Table) Reset() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.Stop()
	t.history = nil
	t.finished = false
	t.commitLocked(t.engine.Reset(t.state))
	log.Debug().Str("table", t.ID).Msg("session reset")
	return t.snapshotLocked()
}

// tick records countdown progress for round.
func (t *Table) tick(round, remaining int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Phase != game.PhaseGuessing || t.state.RoundNumber != round {
		return
	}
	t.state.Round.TimerRemaining = remaining
	t.publishLocked(Event{Type: EventTick, Remaining: remaining})
}

// expire submits the guess for round when its countdown runs out. Calls for
// any other round are stale and ignored.
func (t *Table) expire(round int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Phase != game.PhaseGuessing || t.state.RoundNumber != round {
		return
	}
	if err := t.submitLocked(true); err != nil {
		log.Warn().Err(err).Str("table", t.ID).Msg("timeout submit")
	}
}

func (t *Table) commitLocked(s game.Session) {
	t.state = s
	snap := t.snapshotLocked()
	t.publishLocked(Event{Type: EventState, State: &snap})
}

// Snapshot returns the current state.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Table) snapshotLocked() Snapshot {
	return snapshotOf(t.ID, t.state)
}

// Standings ranks the players by score.
func (t *Table) Standings() ([]game.Standing, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Active() {
		return nil, ErrNotInitialized
	}
	return game.Standings(t.state.Players), nil
}

// History returns the scored rounds so far.
func (t *Table) History() []RoundRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]RoundRecord{}, t.history...)
}

// DialView is the geometry the presentation layer draws.
type DialView struct {
	game.Dial
	Needle  game.Point    `json:"needle"`
	Angle   float64       `json:"angle"`
	Sectors []game.Sector `json:"sectors,omitempty"`
}

// Dial returns the needle and, when the target is visible, the zone sectors.
func (t *Table) Dial() (DialView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Active() {
		return DialView{}, ErrNotInitialized
	}
	r := t.state.Round
	v := DialView{
		Dial:   t.dial,
		Needle: t.dial.NeedleEnd(r.Guess),
		Angle:  game.PositionToAngle(r.Guess),
	}
	if targetVisible(t.state.Phase) {
		v.Sectors = game.ZoneSectors(r.Target, t.engine.Rules().Zones)
	}
	return v, nil
}

// Close stops the countdown and ends all subscriptions.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.Stop()
	t.closed = true
	for ch := range t.subs {
		close(ch)
		delete(t.subs, ch)
	}
}
