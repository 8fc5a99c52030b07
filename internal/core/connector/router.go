// Package connector computes the curved paths drawn between
// dependency-linked milestones.
//
// Routing is a full recompute of the edge set from current positions; edge
// counts are small enough that partial updates are not worth the bookkeeping.
package connector

import (
	"fmt"
	"math"
	"sort"
)

// Control-point offsets in pixels. Tunable rendering constants, not derived
// from the layout.
const (
	MaxControlOffset = 80
	MinControlOffset = 20
)

// Rect is a rendered milestone's pixel rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Edge is one dependency relation to route: FromID must temporally precede
// ToID.
type Edge struct {
	FromID string
	ToID   string
}

// Path is a cubic connector from the dependency's right edge to the
// dependent's left edge, horizontal at both endpoints.
type Path struct {
	FromID string
	ToID   string
	X1, Y1 float64 // source anchor
	C1X    float64 // first control point (y == Y1)
	C2X    float64 // second control point (y == Y2)
	X2, Y2 float64 // target anchor
}

// SVG returns the path as an SVG path data string.
func (p Path) SVG() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		p.X1, p.Y1, p.C1X, p.Y1, p.C2X, p.Y2, p.X2, p.Y2)
}

// Route computes connector paths for every edge whose endpoints are both
// rendered. Edges with an unrendered endpoint (scrolled out, collapsed
// ancestor) are omitted, never drawn with a fallback position. Output order
// is deterministic: by dependent id, then dependency id.
func Route(edges []Edge, rects map[string]Rect) []Path {
	paths := make([]Path, 0, len(edges))
	for _, e := range edges {
		src, ok := rects[e.FromID]
		if !ok {
			continue
		}
		dst, ok := rects[e.ToID]
		if !ok {
			continue
		}

		x1 := src.X + src.Width
		y1 := src.Y + src.Height/2
		x2 := dst.X
		y2 := dst.Y + dst.Height/2
		off := controlOffset(x1, x2)

		paths = append(paths, Path{
			FromID: e.FromID,
			ToID:   e.ToID,
			X1:     x1,
			Y1:     y1,
			C1X:    x1 + off,
			C2X:    x2 - off,
			X2:     x2,
			Y2:     y2,
		})
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].ToID == paths[j].ToID {
			return paths[i].FromID < paths[j].FromID
		}
		return paths[i].ToID < paths[j].ToID
	})
	return paths
}

// controlOffset keeps curves readable at short distances without ballooning
// at long ones: min(80, max(delta/2, 20)).
func controlOffset(x1, x2 float64) float64 {
	return math.Min(MaxControlOffset, math.Max((x2-x1)/2, MinControlOffset))
}
