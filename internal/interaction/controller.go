// Package interaction turns pointer and key events into rectangle
// gestures. A Controller owns at most one gesture at a time, asks the
// geometry, hit testing and snapping packages for the resulting bounds and
// pushes every visible change to a Surface.
package interaction

import (
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/prefs"
	"github.com/example/spotlightdraw/internal/snap"
	"github.com/example/spotlightdraw/internal/store"
)

// ToggleMessage is the message name other processes send to flip drawing
// on or off.
const ToggleMessage = "TOGGLE_BOX_HIGHLIGHT"

// Mode is the controller state as seen from outside.
type Mode int

const (
	ModeOff Mode = iota
	ModeIdle
	ModeDrawing
	ModePanning
	ModeResizing
	ModeRepositioning
	ModeDuplicating
	ModeInspecting
)

var modeNames = [...]string{"off", "idle", "drawing", "panning", "resizing", "repositioning", "duplicating", "inspecting"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Option configures a Controller.
type Option func(*Controller)

// WithSurface sets where rectangles, guides and cursors are shown.
func WithSurface(s Surface) Option { return func(c *Controller) { c.surface = s } }

// WithViewport sets the drawable area.
func WithViewport(sz geometry.Size) Option { return func(c *Controller) { c.viewport = sz } }

// WithInspector enables element inspection.
func WithInspector(i Inspector) Option { return func(c *Controller) { c.inspector = i } }

// WithStore shares an existing rectangle store.
func WithStore(s *store.Store) Option { return func(c *Controller) { c.rects = s } }

// WithPreferences sets the loader called each time drawing is enabled.
func WithPreferences(fn func() prefs.Preferences) Option {
	return func(c *Controller) { c.loadPrefs = fn }
}

// Controller is the drawing mode state machine. It is not safe for
// concurrent use; hosts serialize events.
type Controller struct {
	surface   Surface
	inspector Inspector
	rects     *store.Store
	viewport  geometry.Size
	loadPrefs func() prefs.Preferences

	enabled   bool
	prefs     prefs.Preferences
	pointer   geometry.Point
	mods      Mods
	helpOpen  bool
	spaceHeld bool
	session   session
	inspect   *inspection
	guides    []snap.Guide
	cursor    Cursor
}

// New creates a disabled controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		surface:   NopSurface{},
		rects:     &store.Store{},
		viewport:  geometry.Size{W: 1920, H: 1080},
		loadPrefs: prefs.Defaults,
		prefs:     prefs.Defaults(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enable loads preferences and starts accepting input.
func (c *Controller) Enable() {
	if c.enabled {
		return
	}
	c.prefs = c.loadPrefs()
	c.enabled = true
	c.refreshCursor()
}

// Disable ends every gesture, closes help and inspection and removes all
// rectangles. The undo slot is dropped too.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.exitInspection()
	c.setHelp(false)
	c.spaceHeld = false
	switch s := c.session.(type) {
	case *drawing:
		c.surface.RemoveRectangle(s.rect.ID)
	case *duplicating:
		c.surface.RemoveRectangle(s.rect.ID)
	}
	c.session = nil
	c.rects.ForgetUndo()
	c.clearRectangles()
	c.setGuides(nil)
	c.enabled = false
	c.refreshCursor()
}

// Toggle flips between enabled and disabled and reports the new state.
func (c *Controller) Toggle() bool {
	if c.enabled {
		c.Disable()
	} else {
		c.Enable()
	}
	return c.enabled
}

// Clear cancels any gesture and removes every rectangle. Drawing mode
// stays as it was.
func (c *Controller) Clear() {
	c.cancel()
	c.clearRectangles()
}

// Enabled reports whether drawing mode is on.
func (c *Controller) Enabled() bool { return c.enabled }

// Mode reports the current state.
func (c *Controller) Mode() Mode {
	switch {
	case !c.enabled:
		return ModeOff
	case c.session != nil:
		if _, ok := c.session.(*drawing); ok && c.spaceHeld {
			return ModePanning
		}
		return c.session.mode()
	case c.inspect != nil:
		return ModeInspecting
	}
	return ModeIdle
}

// SpaceHeld reports whether the pan key is down.
func (c *Controller) SpaceHeld() bool { return c.spaceHeld }

// HelpVisible reports whether the help overlay is shown.
func (c *Controller) HelpVisible() bool { return c.helpOpen }

// Store returns the placed rectangles.
func (c *Controller) Store() *store.Store { return c.rects }

// Preferences returns the preferences loaded at the last Enable.
func (c *Controller) Preferences() prefs.Preferences { return c.prefs }

// Pointer returns the last known pointer position.
func (c *Controller) Pointer() geometry.Point { return c.pointer }

// Guides returns the guides currently shown.
func (c *Controller) Guides() []snap.Guide { return c.guides }

// Cursor returns the cursor currently requested.
func (c *Controller) Cursor() Cursor { return c.cursor }

// Viewport returns the drawable area.
func (c *Controller) Viewport() geometry.Size { return c.viewport }

// SetViewport changes the drawable area, for example after a resize.
func (c *Controller) SetViewport(sz geometry.Size) { c.viewport = sz }

// Active returns the rectangle being drawn or duplicated. It is not part
// of the store until the gesture commits.
func (c *Controller) Active() *store.Rectangle {
	switch s := c.session.(type) {
	case *drawing:
		return s.rect
	case *duplicating:
		return s.rect
	}
	return nil
}

// HandlePointer processes a mouse press, move or release.
func (c *Controller) HandlePointer(e PointerEvent) {
	if !c.enabled {
		return
	}
	c.mods = e.Mods
	switch e.Kind {
	case PointerDown:
		c.pointer = e.Point
		c.pointerDown(e)
	case PointerMove:
		c.pointer = e.Point
		c.pointerMove(e)
	case PointerUp:
		c.pointerUp()
	}
	c.refreshCursor()
}

// HandleKey processes a key press or release.
func (c *Controller) HandleKey(e KeyEvent) {
	if !c.enabled {
		return
	}
	c.mods = e.Mods
	if e.Down {
		c.keyDown(e)
	} else {
		c.keyUp(e)
	}
	c.refreshCursor()
}

func (c *Controller) styleOf(r *store.Rectangle) Style {
	return Style{BorderWidth: r.BorderWidth, ColorIndex: r.ColorIndex}
}

func (c *Controller) show(r *store.Rectangle) {
	c.surface.UpsertRectangle(r.ID, r.Bounds, c.styleOf(r))
}

func (c *Controller) setGuides(g []snap.Guide) {
	if len(g) == 0 && len(c.guides) == 0 {
		return
	}
	c.guides = g
	c.surface.SetGuides(g)
}

func (c *Controller) setHelp(open bool) {
	if c.helpOpen == open {
		return
	}
	c.helpOpen = open
	c.surface.ShowHelp(open)
}

func (c *Controller) clearRectangles() {
	for _, r := range c.rects.Clear() {
		c.surface.RemoveRectangle(r.ID)
	}
}

// resolve snaps b against others when snapping is on and keeps the result
// inside the viewport.
func (c *Controller) resolve(b geometry.Rect, others []geometry.Rect, fn func(geometry.Rect, []geometry.Rect) snap.Result) geometry.Rect {
	var guides []snap.Guide
	if c.prefs.SnapEnabled {
		res := fn(b, others)
		b = res.Rect
		guides = res.Guides
	}
	c.setGuides(guides)
	return geometry.ClampToViewport(b, c.viewport)
}

func (c *Controller) refreshCursor() {
	cur := c.computeCursor()
	if cur == c.cursor {
		return
	}
	c.cursor = cur
	c.surface.SetCursor(cur)
}

func (c *Controller) computeCursor() Cursor {
	if !c.enabled {
		return CursorDefault
	}
	if c.spaceHeld {
		return CursorHidden
	}
	switch s := c.session.(type) {
	case *drawing:
		return CursorCrosshair
	case *resizing:
		return CursorForHandle(s.handle)
	case *repositioning:
		return CursorGrabbing
	case *duplicating:
		return CursorCopy
	}
	if _, h, ok := hitHandle(c.rects, c.pointer); ok {
		return CursorForHandle(h)
	}
	overRect := hitRect(c.rects, c.pointer) >= 0
	switch {
	case overRect && c.mods.Has(ModAlt):
		return CursorCopy
	case overRect && c.mods.CtrlOrMeta():
		return CursorMove
	}
	return CursorCrosshair
}
