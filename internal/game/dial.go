// apps/go-server/internal/game/dial.go
//
// Mapping between the linear 0–100 scale and the semicircular dial.
//
//	angle = (position - 50) * 1.8     position ∈ [0,100] → angle ∈ [-90°,90°]
//	position = angle / 1.8 + 50
//
// 0° points straight up from the dial's centre; negative angles lean left.
// Pointer input is clamped twice (angle, then position) so anything outside
// the arc still lands on the scale.

package game

import "math"

const degreesPerUnit = 1.8

// PositionToAngle converts a scale position to a needle angle in degrees.
func PositionToAngle(pos float64) float64 {
	return (pos - midpoint) * degreesPerUnit
}

// AngleToPosition converts a needle angle in degrees to a scale position.
func AngleToPosition(angle float64) float64 {
	return angle/degreesPerUnit + midpoint
}

// Dial is the input region's geometry in screen coordinates (y grows downward).
type Dial struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

// DefaultDial matches the stock 800×400 view box.
var DefaultDial = Dial{CenterX: 400, CenterY: 300, Radius: 280}

// PointerToPosition maps a pointer location to a scale position.
func (d Dial) PointerToPosition(x, y float64) float64 {
	dx, dy := x-d.CenterX, y-d.CenterY
	if dx == 0 && dy == 0 {
		return midpoint
	}
	angle := math.Atan2(dy, dx)*180/math.Pi + 90
	// atan2 + 90 spans (-90,270]; fold the lower-left quadrant back to negative.
	if angle > 180 {
		angle -= 360
	}
	angle = math.Max(-90, math.Min(90, angle))
	return ClampPosition(AngleToPosition(angle))
}

// Point is a screen coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NeedleEnd is where a needle at pos meets the arc.
func (d Dial) NeedleEnd(pos float64) Point {
	return d.pointAt(PositionToAngle(ClampPosition(pos)), d.Radius)
}

func (d Dial) pointAt(angle, r float64) Point {
	rad := (angle - 90) * math.Pi / 180
	return Point{X: d.CenterX + r*math.Cos(rad), Y: d.CenterY + r*math.Sin(rad)}
}

// Sector is the angular extent of one scoring zone drawn around a target.
type Sector struct {
	Name   string  `json:"name"`
	Points int     `json:"points"`
	Start  float64 `json:"startAngle"`
	End    float64 `json:"endAngle"`
}

// ZoneSectors returns the zone sectors around target, innermost (bullseye)
// first. Sectors are clipped to the dial's ±90° envelope.
func ZoneSectors(target float64, zones Zones) []Sector {
	center := PositionToAngle(ClampPosition(target))
	ordered := zones.Ordered()
	out := make([]Sector, len(ordered))
	for i, z := range ordered {
		half := z.Radius * degreesPerUnit
		out[i] = Sector{
			Name:   z.Name,
			Points: z.Points,
			Start:  math.Max(-90, center-half),
			End:    math.Min(90, center+half),
		}
	}
	return out
}
