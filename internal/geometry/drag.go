package geometry

import "math"

// AxisLock pins movement to a single axis.
type AxisLock int

const (
	LockNone AxisLock = iota
	// LockHorizontal allows movement along x only.
	LockHorizontal
	// LockVertical allows movement along y only.
	LockVertical
)

func (l AxisLock) String() string {
	switch l {
	case LockHorizontal:
		return "horizontal"
	case LockVertical:
		return "vertical"
	}
	return "none"
}

// DragFlags are the modifiers that shape a drawn rectangle.
type DragFlags struct {
	FromCenter bool
	Square     bool
	// Lock constrains the drag to one axis, with LockSize supplying the
	// extent of the other axis captured when the lock engaged.
	Lock     AxisLock
	LockSize Size
}

// DragRect converts an anchor and the current pointer into a rectangle.
// The axis lock is resolved first, then the square constraint, then center
// drawing.
func DragRect(anchor, current Point, f DragFlags) Rect {
	eff := current
	switch f.Lock {
	case LockHorizontal:
		h := f.LockSize.H
		if f.FromCenter {
			h /= 2
		}
		eff.Y = anchor.Y + h*dirOf(current.Y > anchor.Y)
	case LockVertical:
		w := f.LockSize.W
		if f.FromCenter {
			w /= 2
		}
		eff.X = anchor.X + w*dirOf(current.X > anchor.X)
	}

	if f.Square {
		dx := eff.X - anchor.X
		dy := eff.Y - anchor.Y
		d := math.Max(math.Abs(dx), math.Abs(dy))
		eff.X = anchor.X + d*sign(dx)
		eff.Y = anchor.Y + d*sign(dy)
	}

	if f.FromCenter {
		hw := math.Abs(eff.X - anchor.X)
		hh := math.Abs(eff.Y - anchor.Y)
		return Rect{X: anchor.X - hw, Y: anchor.Y - hh, W: hw * 2, H: hh * 2}
	}
	return Rect{
		X: math.Min(anchor.X, eff.X),
		Y: math.Min(anchor.Y, eff.Y),
		W: math.Abs(eff.X - anchor.X),
		H: math.Abs(eff.Y - anchor.Y),
	}
}

func dirOf(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

// ResolveDrawLock picks the lock engaged when the axis modifier is pressed
// mid-draw and returns the pointer extent captured at that moment.
func ResolveDrawLock(anchor, pointer Point) (AxisLock, Size) {
	sz := Size{W: math.Abs(pointer.X - anchor.X), H: math.Abs(pointer.Y - anchor.Y)}
	if sz.W > sz.H {
		return LockHorizontal, sz
	}
	return LockVertical, sz
}

// ApplyAxisLock constrains candidate relative to start. While held is true
// the first call decides the axis from the dominant delta and later calls
// keep it. Releasing resets the lock.
func ApplyAxisLock(candidate, start Point, lock AxisLock, held bool) (Point, AxisLock) {
	if !held {
		return candidate, LockNone
	}
	if lock == LockNone {
		if math.Abs(candidate.X-start.X) > math.Abs(candidate.Y-start.Y) {
			lock = LockHorizontal
		} else {
			lock = LockVertical
		}
	}
	switch lock {
	case LockHorizontal:
		candidate.Y = start.Y
	case LockVertical:
		candidate.X = start.X
	}
	return candidate, lock
}
