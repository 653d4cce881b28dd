package interaction

import (
	"testing"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/prefs"
	"github.com/example/spotlightdraw/internal/snap"
	"github.com/example/spotlightdraw/internal/store"
)

type recordingSurface struct {
	rects   map[string]geometry.Rect
	styles  map[string]Style
	guides  []snap.Guide
	cursor  Cursor
	help    bool
	removed []string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{rects: map[string]geometry.Rect{}, styles: map[string]Style{}}
}

func (s *recordingSurface) UpsertRectangle(id string, b geometry.Rect, st Style) {
	s.rects[id] = b
	s.styles[id] = st
}

func (s *recordingSurface) RemoveRectangle(id string) {
	delete(s.rects, id)
	delete(s.styles, id)
	s.removed = append(s.removed, id)
}

func (s *recordingSurface) SetGuides(g []snap.Guide) { s.guides = g }
func (s *recordingSurface) SetCursor(c Cursor)       { s.cursor = c }
func (s *recordingSurface) ShowHelp(v bool)          { s.help = v }

func newTestController(t *testing.T, opts ...Option) (*Controller, *recordingSurface) {
	t.Helper()
	surf := newRecordingSurface()
	base := []Option{
		WithSurface(surf),
		WithViewport(geometry.Size{W: 1000, H: 800}),
	}
	c := New(append(base, opts...)...)
	c.Enable()
	return c, surf
}

func down(c *Controller, x, y float64, m Mods) {
	c.HandlePointer(PointerEvent{Kind: PointerDown, Point: geometry.Pt(x, y), Mods: m})
}

func move(c *Controller, x, y float64, m Mods) {
	c.HandlePointer(PointerEvent{Kind: PointerMove, Point: geometry.Pt(x, y), Mods: m})
}

func up(c *Controller, x, y float64) {
	c.HandlePointer(PointerEvent{Kind: PointerUp, Point: geometry.Pt(x, y)})
}

func press(c *Controller, k Key, m Mods) {
	c.HandleKey(KeyEvent{Key: k, Down: true, Mods: m})
	c.HandleKey(KeyEvent{Key: k, Down: false, Mods: m})
}

func drawRect(c *Controller, x, y, w, h float64, m Mods) {
	down(c, x, y, m)
	move(c, x+w, y+h, m)
	up(c, x+w, y+h)
}

func TestDrawCommitsRectangle(t *testing.T) {
	c, surf := newTestController(t)
	down(c, 100, 100, 0)
	if c.Mode() != ModeDrawing {
		t.Fatalf("mode %v, want drawing", c.Mode())
	}
	move(c, 150, 140, 0)
	up(c, 150, 140)
	if c.Mode() != ModeIdle {
		t.Fatalf("mode %v, want idle", c.Mode())
	}
	if c.Store().Len() != 1 {
		t.Fatalf("expected one rectangle, got %d", c.Store().Len())
	}
	r := c.Store().At(0)
	if r.Bounds != geometry.R(100, 100, 50, 40) {
		t.Fatalf("bounds %v", r.Bounds)
	}
	if surf.rects[r.ID] != r.Bounds {
		t.Fatal("surface out of sync with store")
	}
}

func TestTinyRectangleDiscarded(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 3, 50, 0)
	if c.Store().Len() != 0 {
		t.Fatal("3px wide rectangle should be discarded")
	}
	if len(surf.rects) != 0 {
		t.Fatalf("surface still shows %v", surf.rects)
	}
	drawRect(c, 100, 100, 4, 4, 0)
	if c.Store().Len() != 1 {
		t.Fatal("4px rectangle should be kept")
	}
}

func TestNewDrawClearsUnlessAdding(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 10, 10, 50, 50, 0)
	drawRect(c, 200, 200, 50, 50, 0)
	if c.Store().Len() != 1 {
		t.Fatalf("plain draw should replace, have %d", c.Store().Len())
	}
	drawRect(c, 400, 400, 50, 50, ModShift)
	if c.Store().Len() != 2 {
		t.Fatalf("shift draw should add, have %d", c.Store().Len())
	}
	c.HandlePointer(PointerEvent{Kind: PointerDown, Point: geometry.Pt(600, 100), Button: ButtonSecondary})
	move(c, 660, 160, 0)
	up(c, 660, 160)
	if c.Store().Len() != 3 {
		t.Fatalf("secondary button draw should add, have %d", c.Store().Len())
	}
}

func TestDrawSnapsToNeighbour(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 200, 100, 0)
	down(c, 104, 300, ModShift)
	move(c, 154, 340, 0)
	if len(surf.guides) == 0 {
		t.Fatal("expected an alignment guide while drawing")
	}
	up(c, 154, 340)
	if len(surf.guides) != 0 {
		t.Fatal("guides should clear on release")
	}
	got := c.Store().At(1).Bounds
	if got.X != 100 || got.W != 54 {
		t.Fatalf("left edge not snapped: %v", got)
	}
}

func TestSnapDisabledByPreference(t *testing.T) {
	c, surf := newTestController(t, WithPreferences(func() prefs.Preferences {
		p := prefs.Defaults()
		p.SnapEnabled = false
		p.BorderWidth = 4
		p.DefaultColor = 2
		return p
	}))
	drawRect(c, 100, 100, 200, 100, 0)
	drawRect(c, 104, 300, 50, 40, ModShift)
	r := c.Store().At(1)
	if r.Bounds.X != 104 {
		t.Fatalf("snapped although disabled: %v", r.Bounds)
	}
	if len(surf.guides) != 0 {
		t.Fatal("guides shown with snapping off")
	}
	if r.BorderWidth != 4 || r.ColorIndex != 2 {
		t.Fatalf("preferences not applied: %+v", r)
	}
}

func TestDrawClampsToViewport(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 900, 700, 300, 300, 0)
	b := c.Store().At(0).Bounds
	if b.Right() > 1000 || b.Bottom() > 800 {
		t.Fatalf("rectangle escaped viewport: %v", b)
	}
}

func TestAxisLockEngagesOnFirstMove(t *testing.T) {
	c, _ := newTestController(t)
	down(c, 100, 100, ModCtrl)
	move(c, 160, 120, ModCtrl)
	move(c, 300, 400, ModCtrl)
	b := c.Active().Bounds
	if b.H != 20 || b.W != 200 {
		t.Fatalf("horizontal lock should keep the captured height: %v", b)
	}
	move(c, 300, 400, 0)
	if c.Active().Bounds.H != 300 {
		t.Fatalf("release should free the axis: %v", c.Active().Bounds)
	}
	up(c, 300, 400)
}

func TestResizeFromEdge(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 200, 100, 0)
	down(c, 300, 150, 0)
	if c.Mode() != ModeResizing {
		t.Fatalf("mode %v, want resizing", c.Mode())
	}
	if c.Cursor() != CursorResizeEW {
		t.Fatalf("cursor %v", c.Cursor())
	}
	move(c, 400, 160, 0)
	up(c, 400, 160)
	if got := c.Store().At(0).Bounds; got != geometry.R(100, 100, 300, 100) {
		t.Fatalf("bounds after resize %v", got)
	}
}

func TestResizeSnapKeepsMinimumWidth(t *testing.T) {
	var s store.Store
	c, _ := newTestController(t, WithStore(&s))
	s.Add(store.New(geometry.R(100, 100, 100, 100), 1, 0))
	// Right edge at 97 sits within snapping range of the collapsed edge at 103.
	s.Add(store.New(geometry.R(50, 300, 47, 50), 1, 0))

	down(c, 200, 150, 0)
	if c.Mode() != ModeResizing {
		t.Fatalf("mode %v, want resizing", c.Mode())
	}
	move(c, 50, 150, 0)
	up(c, 50, 150)
	got := s.At(0).Bounds
	if got.W < geometry.MinSize || got.H < geometry.MinSize {
		t.Fatalf("resize committed %v below the minimum size", got)
	}
	if got != geometry.R(100, 100, 3, 100) {
		t.Fatalf("bounds after resize %v", got)
	}
}

func TestResizeIgnoresPointerDown(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 200, 100, 0)
	down(c, 300, 150, 0)
	down(c, 500, 500, 0)
	if c.Mode() != ModeResizing {
		t.Fatalf("second press changed mode to %v", c.Mode())
	}
	if c.Store().Len() != 1 {
		t.Fatal("second press cleared rectangles")
	}
}

func TestEscapeRevertsResize(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 200, 100, 0)
	down(c, 300, 150, 0)
	move(c, 450, 150, 0)
	press(c, KeyEscape, 0)
	if c.Mode() != ModeIdle {
		t.Fatalf("mode %v", c.Mode())
	}
	if got := c.Store().At(0).Bounds; got != geometry.R(100, 100, 200, 100) {
		t.Fatalf("resize not reverted: %v", got)
	}
	press(c, KeyEscape, 0)
	if c.Enabled() {
		t.Fatal("escape from idle should disable")
	}
}

func TestRepositionWithAxisLock(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	down(c, 150, 150, ModMeta)
	if c.Mode() != ModeRepositioning {
		t.Fatalf("mode %v", c.Mode())
	}
	move(c, 400, 170, ModMeta|ModShift)
	move(c, 420, 600, ModMeta|ModShift)
	up(c, 420, 600)
	if got := c.Store().At(0).Bounds; got != geometry.R(370, 100, 100, 100) {
		t.Fatalf("bounds %v", got)
	}
}

func TestEscapeRevertsReposition(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	down(c, 150, 150, ModCtrl)
	move(c, 500, 500, ModCtrl)
	press(c, KeyEscape, ModCtrl)
	if got := c.Store().At(0).Bounds; got != geometry.R(100, 100, 100, 100) {
		t.Fatalf("reposition not reverted: %v", got)
	}
}

func TestDuplicateCommitsClone(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	orig := c.Store().At(0)
	press(c, KeyTab, 0)
	down(c, 150, 150, ModAlt)
	if c.Mode() != ModeDuplicating {
		t.Fatalf("mode %v", c.Mode())
	}
	if c.Cursor() != CursorCopy {
		t.Fatalf("cursor %v", c.Cursor())
	}
	move(c, 450, 150, ModAlt)
	up(c, 450, 150)
	if c.Store().Len() != 2 {
		t.Fatalf("expected two rectangles, got %d", c.Store().Len())
	}
	clone := c.Store().At(1)
	if clone.Bounds != geometry.R(400, 100, 100, 100) {
		t.Fatalf("clone bounds %v", clone.Bounds)
	}
	if clone.ColorIndex != orig.ColorIndex || clone.ColorIndex != 1 {
		t.Fatalf("clone color %d, original %d", clone.ColorIndex, orig.ColorIndex)
	}
	if orig.Bounds != geometry.R(100, 100, 100, 100) {
		t.Fatalf("original moved: %v", orig.Bounds)
	}
	if len(surf.rects) != 2 {
		t.Fatalf("surface shows %d rectangles", len(surf.rects))
	}
}

func TestEscapeCancelsDuplicate(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	down(c, 150, 150, ModAlt)
	move(c, 450, 150, ModAlt)
	press(c, KeyEscape, 0)
	if c.Store().Len() != 1 || len(surf.rects) != 1 {
		t.Fatalf("clone survived: store=%d surface=%d", c.Store().Len(), len(surf.rects))
	}
}

func TestRepositionSwitchesToDuplicate(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	orig := c.Store().At(0)
	press(c, KeyTab, 0)
	press(c, KeyTab, 0)

	down(c, 150, 150, ModCtrl)
	move(c, 300, 160, ModCtrl|ModShift)
	if orig.Bounds.X != 250 || orig.Bounds.Y != 100 {
		t.Fatalf("original not moving: %v", orig.Bounds)
	}
	move(c, 310, 160, ModCtrl|ModAlt|ModShift)
	if c.Mode() != ModeDuplicating {
		t.Fatalf("mode %v, want duplicating", c.Mode())
	}
	if orig.Bounds != geometry.R(100, 100, 100, 100) {
		t.Fatalf("original not reverted: %v", orig.Bounds)
	}
	move(c, 500, 400, ModCtrl|ModAlt|ModShift)
	clone := c.Active()
	if clone == nil {
		t.Fatal("no clone in progress")
	}
	if clone.Bounds.Y != 100 {
		t.Fatalf("clone lost the horizontal lock: %v", clone.Bounds)
	}
	if clone.Bounds.X != 450 {
		t.Fatalf("clone lost the grab offset: %v", clone.Bounds)
	}
	if clone.ColorIndex != 2 {
		t.Fatalf("clone color %d", clone.ColorIndex)
	}
	up(c, 500, 400)
	if c.Store().Len() != 2 {
		t.Fatalf("expected two rectangles, got %d", c.Store().Len())
	}
}

func TestSpacebarSurvivesPointerUp(t *testing.T) {
	c, _ := newTestController(t)
	down(c, 100, 100, 0)
	move(c, 150, 150, 0)
	c.HandleKey(KeyEvent{Key: KeySpace, Down: true})
	if !c.SpaceHeld() || c.Mode() != ModePanning {
		t.Fatalf("pan not active: held=%v mode=%v", c.SpaceHeld(), c.Mode())
	}
	if c.Cursor() != CursorHidden {
		t.Fatalf("cursor %v while panning", c.Cursor())
	}
	up(c, 150, 150)
	if !c.SpaceHeld() {
		t.Fatal("pointer up cleared the pan key")
	}
	c.HandleKey(KeyEvent{Key: KeySpace, Down: false})
	if c.SpaceHeld() {
		t.Fatal("key up did not clear the pan key")
	}
}

func TestPanMovesAndReanchors(t *testing.T) {
	c, _ := newTestController(t)
	down(c, 100, 100, 0)
	move(c, 150, 150, 0)
	c.HandleKey(KeyEvent{Key: KeySpace, Down: true})
	move(c, 250, 350, 0)
	if got := c.Active().Bounds; got != geometry.R(200, 300, 50, 50) {
		t.Fatalf("pan bounds %v", got)
	}
	c.HandleKey(KeyEvent{Key: KeySpace, Down: false})
	move(c, 300, 400, 0)
	if got := c.Active().Bounds; got != geometry.R(200, 300, 100, 100) {
		t.Fatalf("resize after pan should anchor on the far corner: %v", got)
	}
	up(c, 300, 400)
}

func TestDeleteAndUndo(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	drawRect(c, 300, 100, 100, 100, ModShift)
	press(c, KeyTab, 0)
	move(c, 150, 150, 0)
	press(c, KeyDelete, 0)
	move(c, 350, 150, 0)
	press(c, KeyBackspace, 0)
	if c.Store().Len() != 0 || len(surf.rects) != 0 {
		t.Fatalf("delete left %d rectangles", c.Store().Len())
	}
	press(c, KeyU, 0)
	if c.Store().Len() != 1 {
		t.Fatalf("undo restored %d rectangles", c.Store().Len())
	}
	if got := c.Store().At(0); got.Bounds != geometry.R(300, 100, 100, 100) || got.ColorIndex != 1 {
		t.Fatalf("restored %+v", got)
	}
	press(c, KeyU, 0)
	if c.Store().Len() != 1 {
		t.Fatal("second undo restored another rectangle")
	}
}

func TestHelpToggleAndEscape(t *testing.T) {
	c, surf := newTestController(t)
	press(c, KeyQuestion, ModShift)
	if !surf.help || !c.HelpVisible() {
		t.Fatal("help not shown")
	}
	press(c, KeyEscape, 0)
	if surf.help || !c.Enabled() {
		t.Fatalf("escape should only close help: help=%v enabled=%v", surf.help, c.Enabled())
	}
}

func TestDisableClearsEverything(t *testing.T) {
	c, surf := newTestController(t)
	drawRect(c, 100, 100, 100, 100, 0)
	move(c, 150, 150, 0)
	press(c, KeyDelete, 0)
	drawRect(c, 300, 300, 100, 100, 0)
	down(c, 500, 500, ModShift)
	move(c, 600, 600, ModShift)
	if on := c.Toggle(); on {
		t.Fatal("toggle should disable")
	}
	if len(surf.rects) != 0 || c.Store().Len() != 0 || c.Store().CanUndo() {
		t.Fatalf("state survived disable: surface=%d store=%d", len(surf.rects), c.Store().Len())
	}
	down(c, 10, 10, 0)
	if c.Mode() != ModeOff {
		t.Fatal("input handled while disabled")
	}
	c.Toggle()
	press(c, KeyU, 0)
	if c.Store().Len() != 0 {
		t.Fatal("undo slot survived disable")
	}
}

func TestHoverCursors(t *testing.T) {
	c, _ := newTestController(t)
	drawRect(c, 100, 100, 200, 100, 0)
	move(c, 200, 150, 0)
	if c.Cursor() != CursorCrosshair {
		t.Fatalf("cursor %v", c.Cursor())
	}
	c.HandleKey(KeyEvent{Key: KeyMeta, Down: true, Mods: ModMeta})
	if c.Cursor() != CursorMove {
		t.Fatalf("cursor %v with meta", c.Cursor())
	}
	c.HandleKey(KeyEvent{Key: KeyAlt, Down: true, Mods: ModMeta | ModAlt})
	if c.Cursor() != CursorCopy {
		t.Fatalf("cursor %v with alt", c.Cursor())
	}
	move(c, 100, 100, 0)
	if c.Cursor() != CursorResizeNWSE {
		t.Fatalf("cursor %v on corner", c.Cursor())
	}
}

func TestStoreSharedThroughOption(t *testing.T) {
	var s store.Store
	c, _ := newTestController(t, WithStore(&s))
	drawRect(c, 100, 100, 50, 50, 0)
	if s.Len() != 1 {
		t.Fatal("controller did not use the provided store")
	}
}
