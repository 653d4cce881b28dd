package snap

import "github.com/example/spotlightdraw/internal/geometry"

// Position snaps a rectangle that is being moved. Its size never changes;
// on each axis the nearer of the two edges decides the translation.
// Even spacing is tried when nothing aligned, and spacing guides are
// reported whenever the final position repeats an existing gap.
func Position(r geometry.Rect, others []geometry.Rect) Result {
	x, gx := positionAxis(r, AxisX, others)
	moved := r
	moved.X = x
	y, gy := positionAxis(moved, AxisY, others)
	moved.Y = y
	return Result{Rect: moved, Guides: append(gx, gy...)}
}

func positionAxis(r geometry.Rect, a Axis, others []geometry.Rect) (float64, []Guide) {
	start, size := lo(r, a), ext(r, a)
	end := start + size
	lows, highs, mids := edges(others, a)

	lead := edgeSnap(start, lows, highs)
	trail := edgeSnap(end, highs, lows)

	var guides []Guide
	pos := start
	snapped := false
	switch {
	case lead.ok && lead.dist(start) <= trail.dist(end):
		pos = lead.v
		guides = append(guides, alignGuide(a, lead.v))
		snapped = true
		if trail.ok {
			if s := edgeSnap(pos+size, highs, lows); s.ok {
				guides = append(guides, alignGuide(a, s.v))
			}
		}
	case trail.ok:
		pos = trail.v - size
		guides = append(guides, alignGuide(a, trail.v))
		snapped = true
		if lead.ok {
			if s := edgeSnap(pos, lows, highs); s.ok {
				guides = append(guides, alignGuide(a, s.v))
			}
		}
	}

	if !lead.ok && !trail.ok {
		if s := closest(start+size/2, mids); s.ok {
			pos = s.v - size/2
			guides = append(guides, alignGuide(a, s.v))
			snapped = true
		}
	}

	targets := EvenSpacingTargets(size, a, others)
	if !snapped {
		if t, ok := nearestTarget(start, targets); ok {
			pos = t.Pos
		}
	}

	if t, ok := nearestTarget(pos, targets); ok {
		moved := withSpan(r, a, pos, size)
		for _, g := range GapsOfSize(t.Gap, a, others, moved) {
			guides = append(guides, spacingGuide(a, g))
		}
	}
	return pos, guides
}
