package interaction

import (
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/store"
)

func (c *Controller) keyDown(e KeyEvent) {
	switch {
	case e.Key == KeyQuestion:
		c.setHelp(!c.helpOpen)
		return
	case e.Key == KeyF && c.inspect == nil:
		c.enterInspection()
		return
	}

	if c.inspect != nil {
		switch e.Key {
		case KeyUp:
			c.traverseUp()
			return
		case KeyDown:
			c.traverseDown()
			return
		case KeyLeft:
			c.traverseSibling(-1)
			return
		case KeyRight:
			c.traverseSibling(1)
			return
		}
	}

	switch e.Key {
	case KeyEscape:
		c.escape()
	case KeyTab:
		if r := c.colorTarget(); r != nil {
			r.CycleColor()
			c.show(r)
		}
	case KeyDelete, KeyBackspace:
		if c.session != nil {
			return
		}
		if i := hitRect(c.rects, c.pointer); i >= 0 {
			r := c.rects.Delete(i)
			c.surface.RemoveRectangle(r.ID)
		}
	case KeyU:
		if c.session != nil || c.inspect != nil {
			return
		}
		if r, ok := c.rects.Undo(); ok {
			c.show(r)
		}
	case KeySpace:
		c.spaceDown()
	}
}

func (c *Controller) keyUp(e KeyEvent) {
	switch e.Key {
	case KeyF:
		c.exitInspection()
	case KeySpace:
		c.spaceUp()
	}
}

// escape backs out of the innermost state: help, then inspection, then
// the gesture in progress. With nothing left to close it turns drawing off.
func (c *Controller) escape() {
	switch {
	case c.helpOpen:
		c.setHelp(false)
	case c.inspect != nil:
		c.exitInspection()
	case c.cancel():
	default:
		c.Disable()
	}
}

// colorTarget is the rectangle of the gesture in progress or else the one
// under the pointer.
func (c *Controller) colorTarget() *store.Rectangle {
	switch s := c.session.(type) {
	case *drawing:
		return s.rect
	case *duplicating:
		return s.rect
	case *repositioning:
		return s.rect
	case *resizing:
		return s.rect
	}
	if i := hitRect(c.rects, c.pointer); i >= 0 {
		return c.rects.At(i)
	}
	return nil
}

func (c *Controller) spaceDown() {
	d, ok := c.session.(*drawing)
	if !ok || c.spaceHeld {
		return
	}
	c.spaceHeld = true
	b := d.rect.Bounds
	d.panSize = geometry.Size{W: b.W, H: b.H}
	d.panOffset = geometry.Pt(b.X-c.pointer.X, b.Y-c.pointer.Y)
}

// spaceUp leaves pan mode and re-anchors the drawing on the corner
// opposite the pointer so resizing resumes from where the rectangle is.
func (c *Controller) spaceUp() {
	c.spaceHeld = false
	d, ok := c.session.(*drawing)
	if !ok {
		return
	}
	b := d.rect.Bounds
	if c.pointer.X >= b.CenterX() {
		d.anchor.X = b.Left()
	} else {
		d.anchor.X = b.Right()
	}
	if c.pointer.Y >= b.CenterY() {
		d.anchor.Y = b.Top()
	} else {
		d.anchor.Y = b.Bottom()
	}
}
