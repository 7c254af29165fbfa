package game

// Rand is the randomness the dealer needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Dealer produces fresh rounds from a card catalog.
type Dealer struct {
	cards        []SpectrumCard
	rng          Rand
	timerSeconds int
}

// NewDealer returns a Dealer over cards. The catalog must not be empty.
func NewDealer(cards []SpectrumCard, rng Rand, timerSeconds int) (*Dealer, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Dealer{cards: cards, rng: rng, timerSeconds: timerSeconds}, nil
}

// NewRound picks an unused card (any card once the catalog is exhausted) and
// a target in [20,80], with the guess reset to the midpoint.
func (d *Dealer) NewRound(used []int) Round {
	seen := make(map[int]struct{}, len(used))
	for _, id := range used {
		seen[id] = struct{}{}
	}
	candidates := make([]SpectrumCard, 0, len(d.cards))
	for _, c := range d.cards {
		if _, ok := seen[c.ID]; !ok {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = d.cards
	}

	return Round{
		Card:           candidates[d.rng.Intn(len(candidates))],
		Target:         float64(targetMin + d.rng.Intn(targetMax-targetMin+1)),
		Guess:          midpoint,
		TimerRemaining: d.timerSeconds,
	}
}
