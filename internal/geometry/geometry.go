// Package geometry holds the coordinate math used by the annotation engine:
// viewport clamping, drag-to-rectangle conversion and resize bounds.
package geometry

import (
	"image"
	"math"
)

// MinSize is the smallest extent a resize can produce and the size a drawn
// rectangle has to exceed before it is kept.
const MinSize = 3

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Size is a viewport or rectangle extent.
type Size struct {
	W, H float64
}

// Rect is an axis aligned rectangle described by its top-left corner and
// extent.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Left() float64    { return r.X }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Trunc drops the fractional part of every field, matching how rendered
// bounds are read back as whole pixels.
func (r Rect) Trunc() Rect {
	return Rect{X: math.Trunc(r.X), Y: math.Trunc(r.Y), W: math.Trunc(r.W), H: math.Trunc(r.H)}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	t := r.Trunc()
	return image.Rect(int(t.X), int(t.Y), int(t.X+t.W), int(t.Y+t.H))
}

// ClampToViewport shifts r so it starts inside vp and then shrinks it so it
// does not extend past the far edges.
func ClampToViewport(r Rect, vp Size) Rect {
	x := math.Max(0, math.Min(r.X, vp.W-r.W))
	y := math.Max(0, math.Min(r.Y, vp.H-r.H))
	w := math.Min(r.W, vp.W-x)
	h := math.Min(r.H, vp.H-y)
	return Rect{X: x, Y: y, W: w, H: h}
}

// ClampPoint limits p to [0, vp.W] x [0, vp.H].
func ClampPoint(p Point, vp Size) Point {
	return Point{
		X: math.Max(0, math.Min(p.X, vp.W)),
		Y: math.Max(0, math.Min(p.Y, vp.H)),
	}
}

func sign(d float64) float64 {
	if d >= 0 {
		return 1
	}
	return -1
}
