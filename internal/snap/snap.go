// Package snap aligns a rectangle being drawn, moved or resized with the
// other rectangles on the surface and describes the guides that explain
// each adjustment.
package snap

import (
	"math"

	"github.com/example/spotlightdraw/internal/geometry"
)

// Threshold is the distance in pixels within which an edge, center, size
// or gap is pulled into alignment.
const Threshold = 8

// matchTolerance decides when two sizes or gaps are shown as equal.
const matchTolerance = 1

// Axis is the coordinate a guide refers to. An AxisX align guide is a
// vertical line at an x position; an AxisX spacing guide measures along x.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Kind classifies a guide.
type Kind int

const (
	// Align is a full length line through a shared edge or center.
	Align Kind = iota
	// Spacing marks a gap equal to other gaps on the surface.
	Spacing
	// Dimension marks a rectangle whose size matches the active one.
	Dimension
)

func (k Kind) String() string {
	switch k {
	case Spacing:
		return "spacing"
	case Dimension:
		return "dimension"
	}
	return "align"
}

// Guide is a transient hint drawn while a gesture is in progress.
type Guide struct {
	Kind Kind
	Axis Axis
	// Pos is the line coordinate for Align guides and the span midpoint
	// otherwise.
	Pos        float64
	Start, End float64
	Gap        float64
	Refs       [2]geometry.Rect
}

// Result is an adjusted rectangle together with the guides that justify it.
type Result struct {
	Rect   geometry.Rect
	Guides []Guide
}

// ClosestEdge returns the candidate nearest to pos within Threshold. When
// two candidates are equally close the later one wins.
func ClosestEdge(pos float64, candidates []float64) (float64, bool) {
	best, found := 0.0, false
	limit := float64(Threshold)
	for _, c := range candidates {
		if d := math.Abs(pos - c); d <= limit {
			limit = d
			best = c
			found = true
		}
	}
	return best, found
}

type candidate struct {
	v  float64
	ok bool
}

func closest(pos float64, cs []float64) candidate {
	v, ok := ClosestEdge(pos, cs)
	return candidate{v, ok}
}

func pickCloser(pos float64, a, b candidate) candidate {
	if !a.ok {
		return b
	}
	if !b.ok {
		return a
	}
	if math.Abs(pos-a.v) <= math.Abs(pos-b.v) {
		return a
	}
	return b
}

// edgeSnap snaps pos to an edge of the same side first and the opposite
// side second, keeping whichever is nearer.
func edgeSnap(pos float64, same, opposite []float64) candidate {
	return pickCloser(pos, closest(pos, same), closest(pos, opposite))
}

func (c candidate) dist(pos float64) float64 {
	if !c.ok {
		return math.Inf(1)
	}
	return math.Abs(pos - c.v)
}

func lo(r geometry.Rect, a Axis) float64 {
	if a == AxisY {
		return r.Y
	}
	return r.X
}

func ext(r geometry.Rect, a Axis) float64 {
	if a == AxisY {
		return r.H
	}
	return r.W
}

func hi(r geometry.Rect, a Axis) float64 { return lo(r, a) + ext(r, a) }

func withSpan(r geometry.Rect, a Axis, start, size float64) geometry.Rect {
	if a == AxisY {
		r.Y, r.H = start, size
	} else {
		r.X, r.W = start, size
	}
	return r
}

// edges collects the leading edges, trailing edges and centers of rects.
func edges(rects []geometry.Rect, a Axis) (lows, highs, mids []float64) {
	for _, r := range rects {
		l, e := lo(r, a), ext(r, a)
		lows = append(lows, l)
		highs = append(highs, l+e)
		mids = append(mids, l+e/2)
	}
	return lows, highs, mids
}

func alignGuide(a Axis, pos float64) Guide {
	return Guide{Kind: Align, Axis: a, Pos: pos}
}

func spacingGuide(a Axis, g Gap) Guide {
	return Guide{
		Kind:  Spacing,
		Axis:  a,
		Pos:   (g.Start + g.End) / 2,
		Start: g.Start,
		End:   g.End,
		Gap:   g.Size,
		Refs:  [2]geometry.Rect{g.A, g.B},
	}
}

// dimensionGuides marks every rectangle whose extent on a is within one
// pixel of size.
func dimensionGuides(size float64, a Axis, others []geometry.Rect) []Guide {
	var out []Guide
	for _, b := range others {
		if math.Abs(size-ext(b, a)) <= matchTolerance {
			out = append(out, Guide{
				Kind:  Dimension,
				Axis:  a,
				Pos:   lo(b, a) + ext(b, a)/2,
				Start: lo(b, a),
				End:   hi(b, a),
				Refs:  [2]geometry.Rect{b, b},
			})
		}
	}
	return out
}

// matchSize finds the other extent nearest to size within Threshold.
// Only strictly closer matches replace an earlier one.
func matchSize(size float64, a Axis, others []geometry.Rect) (float64, bool) {
	best := math.Inf(1)
	match, found := 0.0, false
	for _, b := range others {
		if d := math.Abs(size - ext(b, a)); d <= Threshold && d < best {
			best = d
			match = ext(b, a)
			found = true
		}
	}
	return match, found
}
