// Package hittest answers which placed rectangle, or which of its resize
// handles, sits under a point. Rectangles are searched topmost first.
package hittest

import (
	"math"

	"github.com/example/spotlightdraw/internal/geometry"
)

// HandleZone is how far from an edge a point may be and still grab it.
const HandleZone = 6

// Collection is an ordered set of rectangles, bottom to top.
type Collection interface {
	Len() int
	BoundsAt(i int) geometry.Rect
}

// RectangleAt returns the index of the topmost rectangle containing p or -1.
func RectangleAt(c Collection, p geometry.Point) int {
	for i := c.Len() - 1; i >= 0; i-- {
		if c.BoundsAt(i).Contains(p) {
			return i
		}
	}
	return -1
}

// HandleAt returns the topmost rectangle whose resize zone contains p along
// with the handle grabbed. Corners win over edges. A point well inside a
// rectangle occludes everything beneath it, so the search stops there.
func HandleAt(c Collection, p geometry.Point) (int, geometry.Handle, bool) {
	for i := c.Len() - 1; i >= 0; i-- {
		b := c.BoundsAt(i)
		left, right, top, bottom := b.Left(), b.Right(), b.Top(), b.Bottom()

		nearLeft := math.Abs(p.X-left) <= HandleZone
		nearRight := math.Abs(p.X-right) <= HandleZone
		nearTop := math.Abs(p.Y-top) <= HandleZone
		nearBottom := math.Abs(p.Y-bottom) <= HandleZone
		inH := p.X >= left-HandleZone && p.X <= right+HandleZone
		inV := p.Y >= top-HandleZone && p.Y <= bottom+HandleZone

		var h geometry.Handle
		switch {
		case nearTop && nearLeft:
			h = geometry.HandleNW
		case nearTop && nearRight:
			h = geometry.HandleNE
		case nearBottom && nearLeft:
			h = geometry.HandleSW
		case nearBottom && nearRight:
			h = geometry.HandleSE
		case nearTop && inH:
			h = geometry.HandleN
		case nearBottom && inH:
			h = geometry.HandleS
		case nearLeft && inV:
			h = geometry.HandleW
		case nearRight && inV:
			h = geometry.HandleE
		}
		if h != geometry.HandleNone {
			return i, h, true
		}
		if b.Contains(p) {
			return -1, geometry.HandleNone, false
		}
	}
	return -1, geometry.HandleNone, false
}
