// Package timescale contains the pure time-to-pixel geometry for the timeline.
// The mapper is an affine, invertible function for a fixed scale; changing the
// scale or density invalidates every previously computed pixel position.
package timescale

import (
	"fmt"
	"time"
)

// Scale is the granularity of one timeline unit.
type Scale string

// Supported scales.
const (
	ScaleHour  Scale = "hour"
	ScaleDay   Scale = "day"
	ScaleWeek  Scale = "week"
	ScaleMonth Scale = "month"
)

// ParseScale converts a string to a Scale.
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case ScaleHour, ScaleDay, ScaleWeek, ScaleMonth:
		return Scale(s), nil
	default:
		return "", fmt.Errorf("unknown time scale %q (expected hour, day, week or month)", s)
	}
}

// Unit returns the duration of one timeline unit at this scale.
// Month is a fixed 30-day unit: the mapper trades calendar accuracy for an
// affine, invertible mapping.
func (s Scale) Unit() time.Duration {
	switch s {
	case ScaleHour:
		return time.Hour
	case ScaleDay:
		return 24 * time.Hour
	case ScaleWeek:
		return 7 * 24 * time.Hour
	case ScaleMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// DefaultPixelsPerUnit returns the default pixel density for the scale.
func (s Scale) DefaultPixelsPerUnit() float64 {
	switch s {
	case ScaleHour:
		return 40
	case ScaleDay:
		return 60
	case ScaleWeek:
		return 120
	case ScaleMonth:
		return 240
	default:
		return 60
	}
}
