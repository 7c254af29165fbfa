package game

// NextPlayerIndex rotates through the seats.
func NextPlayerIndex(current, total int) int {
	return (current + 1) % total
}

// Winner returns the first player in list order whose score reaches target.
// Only the acting player scores in a round, so two players crossing in the
// same check should not happen; list order settles it if it does.
func Winner(players []Player, target int) (Player, bool) {
	for _, p := range players {
		if p.Score >= target {
			return p, true
		}
	}
	return Player{}, false
}

// advance ends the current turn. In competitive mode a player at or above the
// target score ends the session instead of dealing another round.
func (e *Engine) advance(s Session) Session {
	if s.Mode == ModeCompetitive {
		if _, ok := Winner(s.Players, s.TargetScore); ok {
			s.Phase = PhaseGameOver
			return s
		}
	}

	s.CurrentPlayerIndex = NextPlayerIndex(s.CurrentPlayerIndex, len(s.Players))
	s.Round = e.dealer.NewRound(s.UsedCards)
	s.RoundNumber++
	s.UsedCards = append(s.UsedCards, s.Round.Card.ID)
	s.Phase = PhaseClueGiving
	return s
}
