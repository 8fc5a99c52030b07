package timescale

import (
	"math"
	"time"
)

// Mapper converts between instants and horizontal pixel coordinates.
// The mapping is affine: x = (t - Origin) / Unit * PixelsPerUnit.
type Mapper struct {
	Scale         Scale
	PixelsPerUnit float64
	Origin        time.Time
}

// NewMapper creates a mapper with the scale's default pixel density.
func NewMapper(scale Scale, origin time.Time) Mapper {
	return Mapper{
		Scale:         scale,
		PixelsPerUnit: scale.DefaultPixelsPerUnit(),
		Origin:        origin,
	}
}

// ToX maps an instant to a pixel x coordinate.
func (m Mapper) ToX(t time.Time) float64 {
	units := float64(t.Sub(m.Origin)) / float64(m.Scale.Unit())
	return units * m.PixelsPerUnit
}

// ToInstant maps a pixel x coordinate back to an instant, rounded to the
// nearest whole unit. ToInstant(ToX(t)) == t for unit-aligned t.
func (m Mapper) ToInstant(x float64) time.Time {
	units := math.Round(x / m.PixelsPerUnit)
	return m.Origin.Add(time.Duration(units) * m.Scale.Unit())
}

// DeltaDuration converts a pixel distance to a time delta, rounded to the
// nearest whole unit. Used to turn pointer movement into schedule shifts.
func (m Mapper) DeltaDuration(pixels float64) time.Duration {
	units := math.Round(pixels / m.PixelsPerUnit)
	return time.Duration(units) * m.Scale.Unit()
}

// Width returns the pixel width of the [start, end] interval.
func (m Mapper) Width(start, end time.Time) float64 {
	return m.ToX(end) - m.ToX(start)
}
