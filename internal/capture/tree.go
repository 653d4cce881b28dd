package capture

import (
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
)

// Window is one node of the window hierarchy. Children are kept in
// stacking order, bottom first.
type Window struct {
	ID       uint32
	Title    string
	Rect     geometry.Rect
	parent   *Window
	children []*Window
}

// AddChild appends c on top of w's existing children.
func (w *Window) AddChild(c *Window) *Window {
	c.parent = w
	w.children = append(w.children, c)
	return c
}

// Children returns the direct children, bottom first.
func (w *Window) Children() []*Window { return w.children }

func (w *Window) Bounds() geometry.Rect { return w.Rect }

func (w *Window) Parent() interaction.Element {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

func (w *Window) Siblings() []interaction.Element {
	if w.parent == nil {
		return []interaction.Element{w}
	}
	out := make([]interaction.Element, len(w.parent.children))
	for i, c := range w.parent.children {
		out[i] = c
	}
	return out
}

// Translate moves w and all of its descendants by (dx, dy).
func (w *Window) Translate(dx, dy float64) {
	w.Rect.X += dx
	w.Rect.Y += dy
	for _, c := range w.children {
		c.Translate(dx, dy)
	}
}

// Tree is an interaction.Inspector over a snapshot of the hierarchy.
type Tree struct {
	Root *Window
}

// ElementAt returns the topmost, deepest window containing p.
func (t *Tree) ElementAt(p geometry.Point) interaction.Element {
	if t == nil || t.Root == nil {
		return nil
	}
	if !t.Root.Rect.Contains(p) {
		return nil
	}
	cur := t.Root
	for {
		var next *Window
		for i := len(cur.children) - 1; i >= 0; i-- {
			if cur.children[i].Rect.Contains(p) {
				next = cur.children[i]
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}
