// apps/go-server/internal/game/scoring.go
//
// Distance-based scoring for a single round.
//
// A guess is compared to the target by absolute distance on the 0–100 scale
// (optionally the shorter way around the 0/100 seam). The zone table is
// walked from the smallest radius outward; the first zone containing the
// distance decides the points. Label and color depend on the points only.
//
// Everything here is pure: no logging, no randomness.

package game

import (
	"math"
	"sort"
)

// Zone is one concentric scoring band around the target.
type Zone struct {
	Radius float64 `json:"radius"`
	Points int     `json:"points"`
}

// Zones maps a zone name to its band. Evaluated in ascending radius order.
type Zones map[string]Zone

// NamedZone is a Zone with its table key attached.
type NamedZone struct {
	Name string `json:"name"`
	Zone
}

// Ordered returns the zones innermost first. Equal radii order by name so the
// result is deterministic.
func (z Zones) Ordered() []NamedZone {
	out := make([]NamedZone, 0, len(z))
	for name, zone := range z {
		out = append(out, NamedZone{Name: name, Zone: zone})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Radius != out[j].Radius {
			return out[i].Radius < out[j].Radius
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Outcome is the result shown on the reveal screen.
type Outcome struct {
	Points int    `json:"points"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// Scorer evaluates guesses against a zone table.
type Scorer struct {
	zones      []NamedZone
	wraparound bool
}

// NewScorer builds a Scorer from a zone table.
func NewScorer(zones Zones, wraparound bool) (Scorer, error) {
	if len(zones) == 0 {
		return Scorer{}, ErrNoZones
	}
	return Scorer{zones: zones.Ordered(), wraparound: wraparound}, nil
}

// Score returns points, label and color for a guess against a target.
func (s Scorer) Score(target, guess float64) Outcome {
	return ScoreOutcome(s.Points(target, guess))
}

// Points returns just the point value for a guess.
func (s Scorer) Points(target, guess float64) int {
	d := s.Distance(target, guess)
	for _, z := range s.zones {
		if d <= z.Radius {
			return z.Points
		}
	}
	return 0
}

// Distance is |target-guess| with both clamped to the scale, or the shorter
// way around the seam when wraparound is enabled.
func (s Scorer) Distance(target, guess float64) float64 {
	d := math.Abs(ClampPosition(target) - ClampPosition(guess))
	if s.wraparound {
		// 0 and 100 are one step apart going the other way.
		d = math.Min(d, 101-d)
	}
	return d
}

// ScoreOutcome maps a point value to its label and color.
func ScoreOutcome(points int) Outcome {
	switch points {
	case 4:
		return Outcome{Points: 4, Label: "BULLSEYE!", Color: "#FFD700"} // gold
	case 3:
		return Outcome{Points: 3, Label: "CLOSE!", Color: "#32CD32"} // lime
	case 2:
		return Outcome{Points: 2, Label: "GOOD!", Color: "#FFA500"} // orange
	default:
		return Outcome{Points: points, Label: "MISS!", Color: "#FF6B6B"} // red
	}
}

// ClampPosition pins p to [0,100]. NaN becomes the midpoint.
func ClampPosition(p float64) float64 {
	if math.IsNaN(p) {
		return midpoint
	}
	return math.Max(0, math.Min(100, p))
}
