package interaction

import (
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/snap"
)

// Cursor is the pointer shape the surface should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorResizeNS
	CursorResizeEW
	CursorResizeNESW
	CursorResizeNWSE
	CursorMove
	CursorGrabbing
	CursorCopy
	CursorHidden
)

var cursorNames = [...]string{
	"default", "crosshair", "ns-resize", "ew-resize", "nesw-resize",
	"nwse-resize", "move", "grabbing", "copy", "none",
}

func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "default"
}

// CursorForHandle maps a resize handle to its cursor.
func CursorForHandle(h geometry.Handle) Cursor {
	switch h {
	case geometry.HandleN, geometry.HandleS:
		return CursorResizeNS
	case geometry.HandleE, geometry.HandleW:
		return CursorResizeEW
	case geometry.HandleNE, geometry.HandleSW:
		return CursorResizeNESW
	case geometry.HandleNW, geometry.HandleSE:
		return CursorResizeNWSE
	}
	return CursorDefault
}

// Style is how a rectangle is drawn.
type Style struct {
	BorderWidth float64
	ColorIndex  int
	// Inspect marks the outline that tracks an inspected element.
	Inspect bool
}

// Surface receives every visible change the controller makes.
type Surface interface {
	UpsertRectangle(id string, bounds geometry.Rect, style Style)
	RemoveRectangle(id string)
	SetGuides(guides []snap.Guide)
	SetCursor(c Cursor)
	ShowHelp(visible bool)
}

// Element is a node of whatever hierarchy lies under the surface.
// Implementations must be comparable with ==.
type Element interface {
	Bounds() geometry.Rect
	// Parent returns nil at the top of the hierarchy.
	Parent() Element
	// Siblings returns the children of the parent, including the element
	// itself, in stacking order.
	Siblings() []Element
}

// Inspector finds the element under a point.
type Inspector interface {
	ElementAt(p geometry.Point) Element
}

// NopSurface discards every update.
type NopSurface struct{}

func (NopSurface) UpsertRectangle(string, geometry.Rect, Style) {}
func (NopSurface) RemoveRectangle(string)                        {}
func (NopSurface) SetGuides([]snap.Guide)                        {}
func (NopSurface) SetCursor(Cursor)                              {}
func (NopSurface) ShowHelp(bool)                                 {}
