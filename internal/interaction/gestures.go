package interaction

import (
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/hittest"
	"github.com/example/spotlightdraw/internal/snap"
	"github.com/example/spotlightdraw/internal/store"
)

// session is the state of the gesture in progress. Exactly one of the
// concrete types below is live while a button is held.
type session interface {
	mode() Mode
}

type drawing struct {
	rect     *store.Rectangle
	anchor   geometry.Point
	alt      bool
	shift    bool
	axisHeld bool
	lock     geometry.AxisLock
	lockSize geometry.Size

	panSize   geometry.Size
	panOffset geometry.Point
}

type resizing struct {
	rect   *store.Rectangle
	handle geometry.Handle
	start  geometry.Rect
}

// drag moves a rectangle by its grab offset.
type drag struct {
	rect   *store.Rectangle
	offset geometry.Point
	start  geometry.Point
	lock   geometry.AxisLock
}

type repositioning struct{ drag }

type duplicating struct{ drag }

func (*drawing) mode() Mode       { return ModeDrawing }
func (*resizing) mode() Mode      { return ModeResizing }
func (*repositioning) mode() Mode { return ModeRepositioning }
func (*duplicating) mode() Mode   { return ModeDuplicating }

func hitRect(s *store.Store, p geometry.Point) int { return hittest.RectangleAt(s, p) }

func hitHandle(s *store.Store, p geometry.Point) (int, geometry.Handle, bool) {
	return hittest.HandleAt(s, p)
}

func newDrag(r *store.Rectangle, p geometry.Point) drag {
	b := r.Bounds
	return drag{
		rect:   r,
		offset: geometry.Pt(b.X-p.X, b.Y-p.Y),
		start:  geometry.Pt(b.X, b.Y),
	}
}

func (c *Controller) pointerDown(e PointerEvent) {
	if c.session != nil || c.inspect != nil {
		return
	}
	p := e.Point

	if i, h, ok := hitHandle(c.rects, p); ok {
		r := c.rects.At(i)
		c.session = &resizing{rect: r, handle: h, start: r.Bounds}
		return
	}

	if e.Mods.Has(ModAlt) {
		if i := hitRect(c.rects, p); i >= 0 {
			src := c.rects.At(i)
			clone := store.New(src.Bounds, c.prefs.BorderWidth, src.ColorIndex)
			c.session = &duplicating{newDrag(clone, p)}
			c.show(clone)
			return
		}
	}

	if e.Mods.CtrlOrMeta() {
		if i := hitRect(c.rects, p); i >= 0 {
			c.session = &repositioning{newDrag(c.rects.At(i), p)}
			return
		}
	}

	if !e.Mods.Has(ModShift) && e.Button != ButtonSecondary {
		c.clearRectangles()
	}
	c.spaceHeld = false
	r := store.New(geometry.R(p.X, p.Y, 0, 0), c.prefs.BorderWidth, c.prefs.DefaultColor)
	c.session = &drawing{
		rect:   r,
		anchor: p,
		alt:    e.Mods.Has(ModAlt),
		shift:  e.Mods.Has(ModShift),
	}
	c.show(r)
}

func (c *Controller) pointerMove(e PointerEvent) {
	switch s := c.session.(type) {
	case *resizing:
		p := geometry.ClampPoint(e.Point, c.viewport)
		b := geometry.ResizeBounds(p, s.handle, s.start, e.Mods.Has(ModAlt))
		b = c.resolve(b, c.rects.Others(s.rect.ID), func(r geometry.Rect, others []geometry.Rect) snap.Result {
			return snap.Resize(r, s.handle, others)
		})
		s.rect.SetBounds(b)
		c.show(s.rect)
	case *repositioning:
		if e.Mods.Has(ModAlt) {
			c.switchToDuplicate(s)
			return
		}
		c.moveDrag(&s.drag, e, c.rects.Others(s.rect.ID))
	case *duplicating:
		c.moveDrag(&s.drag, e, c.rects.Others(s.rect.ID))
	case *drawing:
		c.moveDraw(s, e)
	}
}

func (c *Controller) moveDrag(d *drag, e PointerEvent, others []geometry.Rect) {
	p := geometry.ClampPoint(e.Point, c.viewport)
	cand := geometry.Pt(p.X+d.offset.X, p.Y+d.offset.Y)
	cand, d.lock = geometry.ApplyAxisLock(cand, d.start, d.lock, e.Mods.Has(ModShift))

	b := d.rect.Bounds
	b.X, b.Y = cand.X, cand.Y
	res := c.resolve(b, others, snap.Position)
	b.X, b.Y = res.X, res.Y
	d.rect.SetBounds(b)
	c.show(d.rect)
}

func (c *Controller) moveDraw(s *drawing, e PointerEvent) {
	s.alt = e.Mods.Has(ModAlt)
	s.shift = e.Mods.Has(ModShift)

	held := e.Mods.CtrlOrMeta()
	switch {
	case held && !s.axisHeld:
		s.lock, s.lockSize = geometry.ResolveDrawLock(s.anchor, e.Point)
	case !held && s.axisHeld:
		s.lock = geometry.LockNone
	}
	s.axisHeld = held

	p := geometry.ClampPoint(e.Point, c.viewport)
	others := c.rects.Others(s.rect.ID)
	var b geometry.Rect
	if c.spaceHeld {
		b = geometry.R(p.X+s.panOffset.X, p.Y+s.panOffset.Y, s.panSize.W, s.panSize.H)
		b = c.resolve(b, others, snap.Position)
	} else {
		flags := geometry.DragFlags{
			FromCenter: s.alt,
			Square:     s.shift,
			Lock:       s.lock,
			LockSize:   s.lockSize,
		}
		b = c.resolve(geometry.DragRect(s.anchor, p, flags), others, snap.Draw)
	}
	s.rect.SetBounds(b)
	c.show(s.rect)
}

// switchToDuplicate turns a move into a copy: the original snaps back to
// where the move started and a clone continues the drag.
func (c *Controller) switchToDuplicate(s *repositioning) {
	b := s.rect.Bounds
	b.X, b.Y = s.start.X, s.start.Y
	s.rect.SetBounds(b)
	c.show(s.rect)

	clone := store.New(b, c.prefs.BorderWidth, s.rect.ColorIndex)
	c.show(clone)
	d := s.drag
	d.rect = clone
	c.session = &duplicating{d}
}

func (c *Controller) pointerUp() {
	c.setGuides(nil)
	switch s := c.session.(type) {
	case *duplicating:
		c.rects.Add(s.rect)
	case *drawing:
		if s.rect.Bounds.W > geometry.MinSize && s.rect.Bounds.H > geometry.MinSize {
			c.rects.Add(s.rect)
		} else {
			c.surface.RemoveRectangle(s.rect.ID)
		}
	}
	c.session = nil
}

// cancel aborts the gesture in progress, restoring what it changed. It
// reports whether there was anything to cancel.
func (c *Controller) cancel() bool {
	switch s := c.session.(type) {
	case *duplicating:
		c.surface.RemoveRectangle(s.rect.ID)
	case *resizing:
		s.rect.SetBounds(s.start)
		c.show(s.rect)
	case *repositioning:
		b := s.rect.Bounds
		b.X, b.Y = s.start.X, s.start.Y
		s.rect.SetBounds(b)
		c.show(s.rect)
	case *drawing:
		c.surface.RemoveRectangle(s.rect.ID)
	default:
		return false
	}
	c.session = nil
	c.setGuides(nil)
	return true
}
