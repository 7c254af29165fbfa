package game

// Rules is the static configuration the engine is built with.
type Rules struct {
	MinPlayers   int
	MaxPlayers   int
	ScoreOptions []int
	TimerSeconds int
	Zones        Zones
	// Wraparound measures distance around the 0/100 seam as well as directly.
	Wraparound bool
	Palette    []string
}

const (
	defaultMinPlayers   = 2
	defaultMaxPlayers   = 4
	defaultTimerSeconds = 60

	// Targets are drawn from [targetMin, targetMax] so every zone stays on the dial.
	targetMin = 20
	targetMax = 80

	midpoint = 50.0
)

// PlayerColors is the fixed palette; player i gets PlayerColors[i % len].
var PlayerColors = []string{
	"#FF8A8A",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#FFB347",
	"#87CEEB",
}

// DefaultZones is the bullseye/close/good table. Anything wider is a miss.
func DefaultZones() Zones {
	return Zones{
		"bullseye": {Radius: 2, Points: 4},
		"close":    {Radius: 6, Points: 3},
		"good":     {Radius: 10, Points: 2},
	}
}

// DefaultRules returns the stock configuration.
func DefaultRules() Rules {
	return Rules{
		MinPlayers:   defaultMinPlayers,
		MaxPlayers:   defaultMaxPlayers,
		ScoreOptions: []int{20, 50, 100},
		TimerSeconds: defaultTimerSeconds,
		Zones:        DefaultZones(),
		Palette:      PlayerColors,
	}
}

// withDefaults fills any zero field from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.MinPlayers <= 0 {
		r.MinPlayers = d.MinPlayers
	}
	if r.MaxPlayers <= 0 {
		r.MaxPlayers = d.MaxPlayers
	}
	if len(r.ScoreOptions) == 0 {
		r.ScoreOptions = d.ScoreOptions
	}
	if r.TimerSeconds <= 0 {
		r.TimerSeconds = d.TimerSeconds
	}
	if r.Zones == nil {
		r.Zones = d.Zones
	}
	if len(r.Palette) == 0 {
		r.Palette = d.Palette
	}
	return r
}
