// Package store keeps the placed annotation rectangles in z-order along
// with their colors and a single-slot undo for deletions.
package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/example/spotlightdraw/internal/geometry"
)

// Palette lists the rectangle colors in cycling order.
var Palette = []string{"orange", "green", "blue", "purple", "plain"}

// ColorByName maps a palette name to its index. An empty name is the
// default color.
func ColorByName(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, true
	}
	for i, n := range Palette {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// ColorName returns the palette name for idx.
func ColorName(idx int) string {
	return Palette[normalizeColor(idx)]
}

func normalizeColor(idx int) int {
	n := len(Palette)
	return ((idx % n) + n) % n
}

// Rectangle is a placed annotation.
type Rectangle struct {
	ID          string
	Bounds      geometry.Rect
	BorderWidth float64
	ColorIndex  int
}

// New creates a rectangle with a fresh ID.
func New(bounds geometry.Rect, border float64, color int) *Rectangle {
	return &Rectangle{
		ID:          uuid.NewString(),
		Bounds:      bounds.Trunc(),
		BorderWidth: border,
		ColorIndex:  normalizeColor(color),
	}
}

// CycleColor advances to the next palette color.
func (r *Rectangle) CycleColor() {
	r.ColorIndex = normalizeColor(r.ColorIndex + 1)
}

// SetBounds stores b as whole pixels.
func (r *Rectangle) SetBounds(b geometry.Rect) {
	r.Bounds = b.Trunc()
}

type deleted struct {
	bounds geometry.Rect
	border float64
	color  int
}

// Store is the ordered collection of placed rectangles, bottom to top.
type Store struct {
	rects []*Rectangle
	undo  *deleted
}

// Add places r on top of the others.
func (s *Store) Add(r *Rectangle) {
	s.rects = append(s.rects, r)
}

// Len reports the number of placed rectangles.
func (s *Store) Len() int { return len(s.rects) }

// At returns the rectangle at z-position i.
func (s *Store) At(i int) *Rectangle { return s.rects[i] }

// BoundsAt returns the bounds of the rectangle at z-position i.
func (s *Store) BoundsAt(i int) geometry.Rect { return s.rects[i].Bounds }

// All returns the rectangles bottom to top. The slice is a copy.
func (s *Store) All() []*Rectangle {
	return append([]*Rectangle(nil), s.rects...)
}

// IndexOf returns the z-position of the rectangle with id or -1.
func (s *Store) IndexOf(id string) int {
	for i, r := range s.rects {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the rectangle with id.
func (s *Store) Get(id string) (*Rectangle, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.rects[i], true
	}
	return nil, false
}

// RemoveAt drops the rectangle at i keeping the order of the rest.
func (s *Store) RemoveAt(i int) *Rectangle {
	if i < 0 || i >= len(s.rects) {
		return nil
	}
	r := s.rects[i]
	s.rects = append(s.rects[:i], s.rects[i+1:]...)
	return r
}

// Others returns the bounds of every rectangle except the one with
// excludeID.
func (s *Store) Others(excludeID string) []geometry.Rect {
	out := make([]geometry.Rect, 0, len(s.rects))
	for _, r := range s.rects {
		if r.ID == excludeID {
			continue
		}
		out = append(out, r.Bounds)
	}
	return out
}

// Clear removes every rectangle and returns what was removed.
func (s *Store) Clear() []*Rectangle {
	old := s.rects
	s.rects = nil
	return old
}

// Delete removes the rectangle at i and remembers it for Undo. Only the
// most recent deletion is kept.
func (s *Store) Delete(i int) *Rectangle {
	r := s.RemoveAt(i)
	if r == nil {
		return nil
	}
	s.undo = &deleted{bounds: r.Bounds, border: r.BorderWidth, color: r.ColorIndex}
	return r
}

// CanUndo reports whether a deletion is waiting to be restored.
func (s *Store) CanUndo() bool { return s.undo != nil }

// Undo recreates the last deleted rectangle on top and clears the slot.
func (s *Store) Undo() (*Rectangle, bool) {
	if s.undo == nil {
		return nil, false
	}
	d := s.undo
	s.undo = nil
	r := New(d.bounds, d.border, d.color)
	s.Add(r)
	return r, true
}

// ForgetUndo discards a pending undo.
func (s *Store) ForgetUndo() { s.undo = nil }
