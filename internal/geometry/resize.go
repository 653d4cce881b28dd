package geometry

import "math"

// Handle identifies which edges of a rectangle a resize drags.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

var handleNames = map[Handle]string{
	HandleN:  "n",
	HandleS:  "s",
	HandleE:  "e",
	HandleW:  "w",
	HandleNE: "ne",
	HandleNW: "nw",
	HandleSE: "se",
	HandleSW: "sw",
}

func (h Handle) String() string {
	if n, ok := handleNames[h]; ok {
		return n
	}
	return "none"
}

func (h Handle) MovesLeft() bool   { return h == HandleW || h == HandleNW || h == HandleSW }
func (h Handle) MovesRight() bool  { return h == HandleE || h == HandleNE || h == HandleSE }
func (h Handle) MovesTop() bool    { return h == HandleN || h == HandleNW || h == HandleNE }
func (h Handle) MovesBottom() bool { return h == HandleS || h == HandleSW || h == HandleSE }

// ResizeBounds computes the rectangle produced by dragging handle to p.
// start is the rectangle as it was when the resize began. With fromCenter
// the rectangle grows symmetrically around the start center.
func ResizeBounds(p Point, handle Handle, start Rect, fromCenter bool) Rect {
	left, top, right, bottom := start.Left(), start.Top(), start.Right(), start.Bottom()

	if fromCenter {
		cx, cy := start.CenterX(), start.CenterY()
		if handle.MovesLeft() || handle.MovesRight() {
			dx := cx - p.X
			if handle.MovesRight() {
				dx = p.X - cx
			}
			dx = math.Max(dx, MinSize/2.0)
			left = math.Round(cx - dx)
			right = math.Round(cx + dx)
		}
		if handle.MovesTop() || handle.MovesBottom() {
			dy := cy - p.Y
			if handle.MovesBottom() {
				dy = p.Y - cy
			}
			dy = math.Max(dy, MinSize/2.0)
			top = math.Round(cy - dy)
			bottom = math.Round(cy + dy)
		}
		return Rect{X: left, Y: top, W: right - left, H: bottom - top}
	}

	if handle.MovesLeft() {
		left = math.Round(math.Min(p.X, right-MinSize))
	}
	if handle.MovesRight() {
		right = math.Round(math.Max(p.X, left+MinSize))
	}
	if handle.MovesTop() {
		top = math.Round(math.Min(p.Y, bottom-MinSize))
	}
	if handle.MovesBottom() {
		bottom = math.Round(math.Max(p.Y, top+MinSize))
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
