package snap

import "github.com/example/spotlightdraw/internal/geometry"

// Draw snaps a rectangle that is being drawn. Both edges on an axis may
// snap independently, so the size can change. Centers are only tried when
// no edge aligned and sizes only when nothing aligned at all.
func Draw(r geometry.Rect, others []geometry.Rect) Result {
	x, w, gx := drawAxis(r, AxisX, others)
	y, h, gy := drawAxis(r, AxisY, others)
	out := geometry.Rect{X: x, Y: y, W: w, H: h}

	guides := append(gx, gy...)
	guides = append(guides, dimensionGuides(w, AxisX, others)...)
	guides = append(guides, dimensionGuides(h, AxisY, others)...)
	return Result{Rect: out, Guides: guides}
}

func drawAxis(r geometry.Rect, a Axis, others []geometry.Rect) (float64, float64, []Guide) {
	start, size := lo(r, a), ext(r, a)
	end := start + size
	lows, highs, mids := edges(others, a)

	var guides []Guide
	aligned := false
	if s := edgeSnap(start, lows, highs); s.ok {
		size += start - s.v
		start = s.v
		guides = append(guides, alignGuide(a, s.v))
		aligned = true
	}
	if s := edgeSnap(end, highs, lows); s.ok {
		size = s.v - start
		guides = append(guides, alignGuide(a, s.v))
		aligned = true
	}
	if !aligned {
		c := start + size/2
		if s := closest(c, mids); s.ok {
			start += s.v - c
			guides = append(guides, alignGuide(a, s.v))
			aligned = true
		}
	}
	if !aligned {
		if m, ok := matchSize(size, a, others); ok {
			size = m
		}
	}
	return start, size, guides
}
