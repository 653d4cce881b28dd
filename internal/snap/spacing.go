package snap

import (
	"math"
	"sort"

	"github.com/example/spotlightdraw/internal/geometry"
)

// Gap is the empty span between two rectangles that are adjacent once
// sorted by their leading edge.
type Gap struct {
	Start, End float64
	Size       float64
	A, B       geometry.Rect
}

// Target is a position at which a rectangle would sit evenly spaced
// relative to an existing pair.
type Target struct {
	Pos float64
	Gap float64
	// Between is set when the target lies inside the pair's gap rather
	// than before or after it.
	Between    bool
	Start, End float64
	A, B       geometry.Rect
}

func sortedByLead(rects []geometry.Rect, a Axis) []geometry.Rect {
	out := append([]geometry.Rect(nil), rects...)
	sort.SliceStable(out, func(i, j int) bool { return lo(out[i], a) < lo(out[j], a) })
	return out
}

// Gaps lists the positive gaps between adjacent rectangles along a.
func Gaps(rects []geometry.Rect, a Axis) []Gap {
	sorted := sortedByLead(rects, a)
	var out []Gap
	for i := 0; i+1 < len(sorted); i++ {
		ra, rb := sorted[i], sorted[i+1]
		end, next := hi(ra, a), lo(rb, a)
		if next > end {
			out = append(out, Gap{Start: end, End: next, Size: next - end, A: ra, B: rb})
		}
	}
	return out
}

// GapsOfSize places moved among others and returns every adjacent gap
// whose size differs from size by less than a pixel.
func GapsOfSize(size float64, a Axis, others []geometry.Rect, moved geometry.Rect) []Gap {
	all := append(append([]geometry.Rect(nil), others...), moved)
	var out []Gap
	for _, g := range Gaps(all, a) {
		if math.Abs(g.Size-size) < matchTolerance {
			out = append(out, g)
		}
	}
	return out
}

// EvenSpacingTargets returns the positions where a rectangle of the given
// extent would repeat or split an existing gap between two others.
func EvenSpacingTargets(size float64, a Axis, others []geometry.Rect) []Target {
	var out []Target
	for _, g := range Gaps(others, a) {
		if g.Size > size {
			half := (g.Size - size) / 2
			out = append(out, Target{
				Pos:     g.Start + half,
				Gap:     half,
				Between: true,
				Start:   g.Start,
				End:     g.End,
				A:       g.A,
				B:       g.B,
			})
		}
		before := lo(g.A, a) - g.Size - size
		out = append(out, Target{
			Pos:   before,
			Gap:   g.Size,
			Start: before + size,
			End:   lo(g.A, a),
			A:     g.A,
			B:     g.B,
		})
		after := hi(g.B, a) + g.Size
		out = append(out, Target{
			Pos:   after,
			Gap:   g.Size,
			Start: hi(g.B, a),
			End:   after,
			A:     g.A,
			B:     g.B,
		})
	}
	return out
}

// nearestTarget picks the target closest to pos within Threshold.
func nearestTarget(pos float64, ts []Target) (Target, bool) {
	best := math.Inf(1)
	var out Target
	found := false
	for _, t := range ts {
		if d := math.Abs(pos - t.Pos); d <= Threshold && d < best {
			best = d
			out = t
			found = true
		}
	}
	return out, found
}
