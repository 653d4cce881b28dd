package snap

import (
	"math"
	"sort"

	"github.com/example/spotlightdraw/internal/geometry"
)

// Resize snaps a rectangle being resized by handle. Only the edges the
// handle drags take part: first edge alignment, then size matching and
// finally matching an existing gap to a neighbor.
func Resize(r geometry.Rect, handle geometry.Handle, others []geometry.Rect) Result {
	out := r
	var guides []Guide

	xMoves := handle.MovesLeft() || handle.MovesRight()
	yMoves := handle.MovesTop() || handle.MovesBottom()
	if xMoves {
		start, size, g := resizeAxis(r, AxisX, handle.MovesLeft(), handle.MovesRight(), others)
		out = withSpan(out, AxisX, start, size)
		guides = append(guides, g...)
	}
	if yMoves {
		start, size, g := resizeAxis(r, AxisY, handle.MovesTop(), handle.MovesBottom(), others)
		out = withSpan(out, AxisY, start, size)
		guides = append(guides, g...)
	}

	if xMoves {
		guides = append(guides, resizeGapGuides(out, AxisX, handle.MovesLeft(), handle.MovesRight(), others)...)
	}
	if yMoves {
		guides = append(guides, resizeGapGuides(out, AxisY, handle.MovesTop(), handle.MovesBottom(), others)...)
	}
	if xMoves {
		guides = append(guides, dimensionGuides(out.W, AxisX, others)...)
	}
	if yMoves {
		guides = append(guides, dimensionGuides(out.H, AxisY, others)...)
	}
	return Result{Rect: out, Guides: guides}
}

func resizeAxis(r geometry.Rect, a Axis, lowMoves, highMoves bool, others []geometry.Rect) (float64, float64, []Guide) {
	start, size := lo(r, a), ext(r, a)
	end := start + size
	lows, highs, _ := edges(others, a)

	var guides []Guide
	snapped := false
	// A target past the fixed edge would leave the rectangle below the
	// resize floor, so such snaps are skipped.
	if lowMoves {
		if s := edgeSnap(start, lows, highs); s.ok && end-s.v >= geometry.MinSize {
			start = s.v
			size = end - s.v
			guides = append(guides, alignGuide(a, s.v))
			snapped = true
		}
	}
	if highMoves {
		if s := edgeSnap(end, highs, lows); s.ok && s.v-start >= geometry.MinSize {
			size = s.v - start
			guides = append(guides, alignGuide(a, s.v))
			snapped = true
		}
	}

	if !snapped {
		if m, ok := matchSize(size, a, others); ok && m >= geometry.MinSize {
			if highMoves {
				size = m
			} else {
				fixed := start + size
				size = m
				start = fixed - size
			}
			snapped = true
		}
	}

	if !snapped {
		start, size = matchGap(start, size, a, lowMoves, highMoves, others)
	}
	return start, size, guides
}

// matchGap pulls the moving edge so its distance to the nearest neighbor
// equals a gap that already exists between two other rectangles.
func matchGap(start, size float64, a Axis, lowMoves, highMoves bool, others []geometry.Rect) (float64, float64) {
	gaps := Gaps(others, a)
	if len(gaps) == 0 {
		return start, size
	}

	best := math.Inf(1)
	target, found, high := 0.0, false, false

	if highMoves {
		cur := start + size
		nearest := math.Inf(1)
		var next geometry.Rect
		ok := false
		for _, b := range others {
			if l := lo(b, a); l >= cur-Threshold && l < nearest {
				nearest = l
				next = b
				ok = true
			}
		}
		if ok {
			gap := lo(next, a) - cur
			for _, g := range gaps {
				if d := math.Abs(gap - g.Size); d <= Threshold && d < best {
					best = d
					target = lo(next, a) - g.Size
					found, high = true, true
				}
			}
		}
	}

	if lowMoves && !found {
		cur := start
		nearest := math.Inf(-1)
		var prev geometry.Rect
		ok := false
		for _, b := range others {
			if h := hi(b, a); h <= cur+Threshold && h > nearest {
				nearest = h
				prev = b
				ok = true
			}
		}
		if ok {
			gap := cur - hi(prev, a)
			for _, g := range gaps {
				if d := math.Abs(gap - g.Size); d <= Threshold && d < best {
					best = d
					target = hi(prev, a) + g.Size
					found = true
				}
			}
		}
	}

	switch {
	case !found:
	case high && target-start < geometry.MinSize:
	case !high && start+size-target < geometry.MinSize:
	case high:
		size = target - start
	default:
		fixed := start + size
		start = target
		size = fixed - start
	}
	return start, size
}

// resizeGapGuides reports spacing guides when the gap next to a moved edge
// occurs at least twice on the surface.
func resizeGapGuides(final geometry.Rect, a Axis, lowMoves, highMoves bool, others []geometry.Rect) []Guide {
	all := append([]geometry.Rect{final}, others...)
	order := make([]int, len(all))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return lo(all[order[i]], a) < lo(all[order[j]], a) })
	ours := 0
	for k, idx := range order {
		if idx == 0 {
			ours = k
			break
		}
	}

	var sizes []float64
	if highMoves && ours < len(order)-1 {
		if next := lo(all[order[ours+1]], a); next > hi(final, a) {
			sizes = append(sizes, next-hi(final, a))
		}
	}
	if lowMoves && ours > 0 {
		if prev := hi(all[order[ours-1]], a); lo(final, a) > prev {
			sizes = append(sizes, lo(final, a)-prev)
		}
	}

	var guides []Guide
	for _, size := range sizes {
		gaps := GapsOfSize(size, a, others, final)
		if len(gaps) < 2 {
			continue
		}
		for _, g := range gaps {
			guides = append(guides, spacingGuide(a, g))
		}
	}
	return guides
}
