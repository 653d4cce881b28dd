// Package render rasterizes the annotation surface: rectangle outlines with
// their shadow, snap guides, the inspection outline and the help overlay.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/prefs"
	"github.com/example/spotlightdraw/internal/snap"
	"github.com/example/spotlightdraw/internal/theme"
)

// Shape is one rectangle as the surface last saw it.
type Shape struct {
	ID     string
	Bounds geometry.Rect
	Style  interaction.Style
}

// Canvas is an interaction.Surface that keeps the latest visible state and
// renders it on demand. It is safe for concurrent use.
type Canvas struct {
	mu       sync.Mutex
	width    int
	height   int
	theme    *theme.Theme
	backdrop image.Image
	order    []string
	shapes   map[string]Shape
	guides   []snap.Guide
	cursor   interaction.Cursor
	help     bool
	settings *prefs.Preferences
	onChange func()
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithTheme sets the colors used for drawing.
func WithTheme(t *theme.Theme) Option { return func(c *Canvas) { c.theme = t } }

// WithBackdrop sets the image drawn under the annotations.
func WithBackdrop(img image.Image) Option { return func(c *Canvas) { c.backdrop = img } }

// WithOnChange registers a callback run after every visible change. It is
// called without the canvas lock held.
func WithOnChange(fn func()) Option { return func(c *Canvas) { c.onChange = fn } }

// New creates a width by height canvas.
func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		theme:  theme.Default(),
		shapes: map[string]Shape{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Canvas) update(fn func()) {
	c.mu.Lock()
	fn()
	notify := c.onChange
	c.mu.Unlock()
	if notify != nil {
		notify()
	}
}

func (c *Canvas) UpsertRectangle(id string, bounds geometry.Rect, style interaction.Style) {
	c.update(func() {
		if _, ok := c.shapes[id]; !ok {
			c.order = append(c.order, id)
		}
		c.shapes[id] = Shape{ID: id, Bounds: bounds, Style: style}
	})
}

func (c *Canvas) RemoveRectangle(id string) {
	c.update(func() {
		if _, ok := c.shapes[id]; !ok {
			return
		}
		delete(c.shapes, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	})
}

func (c *Canvas) SetGuides(guides []snap.Guide) {
	c.update(func() { c.guides = append([]snap.Guide(nil), guides...) })
}

func (c *Canvas) SetCursor(cur interaction.Cursor) {
	c.update(func() { c.cursor = cur })
}

func (c *Canvas) ShowHelp(visible bool) {
	c.update(func() { c.help = visible })
}

// SetOnChange replaces the change callback.
func (c *Canvas) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetSettings shows p in the settings block of the help overlay.
func (c *Canvas) SetSettings(p prefs.Preferences) {
	c.update(func() { c.settings = &p })
}

// SetTheme replaces the drawing colors.
func (c *Canvas) SetTheme(t *theme.Theme) {
	c.update(func() { c.theme = t })
}

// SetBackdrop replaces the image under the annotations.
func (c *Canvas) SetBackdrop(img image.Image) {
	c.update(func() { c.backdrop = img })
}

// Resize changes the output size. The backdrop is scaled to fit.
func (c *Canvas) Resize(width, height int) {
	c.update(func() { c.width, c.height = width, height })
}

// Size returns the output size in pixels.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Cursor returns the last cursor the controller asked for.
func (c *Canvas) Cursor() interaction.Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Shapes returns the rectangles in drawing order.
func (c *Canvas) Shapes() []Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Shape, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.shapes[id])
	}
	return out
}

// Frame is an immutable copy of the canvas state, suitable for drawing on
// another goroutine.
type Frame struct {
	Width, Height int
	Theme         *theme.Theme
	Backdrop      image.Image
	Shapes        []Shape
	Guides        []snap.Guide
	Help          bool
	Settings      *prefs.Preferences
}

// Snapshot copies the current state.
func (c *Canvas) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := Frame{
		Width:    c.width,
		Height:   c.height,
		Theme:    c.theme,
		Backdrop: c.backdrop,
		Shapes:   make([]Shape, 0, len(c.order)),
		Guides:   append([]snap.Guide(nil), c.guides...),
		Help:     c.help,
	}
	if c.settings != nil {
		s := *c.settings
		f.Settings = &s
	}
	for _, id := range c.order {
		f.Shapes = append(f.Shapes, c.shapes[id])
	}
	return f
}

// Image renders the current state.
func (c *Canvas) Image() *image.RGBA {
	return c.Snapshot().Render()
}

// EncodePNG writes the rendered image to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// SavePNG renders the canvas into a PNG file at path.
func (c *Canvas) SavePNG(path string) error {
	if err := gg.SavePNG(path, c.Image()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Render draws f into a new image.
func (f Frame) Render() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(f.Width, 1), max(f.Height, 1)))
	f.RenderInto(dst)
	return dst
}

// RenderInto draws f onto dst, which should be f.Width by f.Height.
func (f Frame) RenderInto(dst *image.RGBA) {
	th := f.Theme
	if th == nil {
		th = theme.Default()
	}
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(th.Background)
	dc.Clear()
	if f.Backdrop != nil {
		drawBackdrop(dst, f.Backdrop)
	}

	drawOutlines(dc, dst.Bounds(), th, f.Shapes)
	for _, g := range f.Guides {
		drawGuide(dc, th, g)
	}
	for _, s := range f.Shapes {
		if s.Style.Inspect {
			drawInspect(dc, th, s.Bounds)
		}
	}
	if f.Help {
		drawHelp(dc, th, f.Settings)
	}
}

func drawBackdrop(dst *image.RGBA, src image.Image) {
	if src.Bounds().Size() == dst.Bounds().Size() {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// drawOutlines strokes every committed rectangle on a separate layer and
// composites it with its drop shadow.
func drawOutlines(dc *gg.Context, bounds image.Rectangle, th *theme.Theme, shapes []Shape) {
	layer := gg.NewContext(bounds.Dx(), bounds.Dy())
	drawn := false
	for _, s := range shapes {
		if s.Style.Inspect {
			continue
		}
		r := s.Bounds
		bw := s.Style.BorderWidth
		if bw <= 0 {
			bw = 1
		}
		layer.SetColor(th.RectColor(s.Style.ColorIndex))
		layer.SetLineWidth(bw)
		// Keep the stroke inside the rectangle so the bounds are exact.
		layer.DrawRectangle(r.X+bw/2, r.Y+bw/2, max(r.W-bw, 0), max(r.H-bw, 0))
		layer.Stroke()
		drawn = true
	}
	if !drawn {
		return
	}
	img, ok := layer.Image().(*image.RGBA)
	if !ok {
		dc.DrawImage(layer.Image(), 0, 0)
		return
	}
	res := ApplyShadow(img, ShadowFor(th.RectShadow))
	dc.DrawImage(res.Image, -res.Offset.X, -res.Offset.Y)
}

func drawInspect(dc *gg.Context, th *theme.Theme, r geometry.Rect) {
	dc.Push()
	defer dc.Pop()
	dc.SetColor(th.Inspect)
	dc.SetLineWidth(2)
	dc.SetDash(6, 4)
	dc.DrawRectangle(r.X+1, r.Y+1, max(r.W-2, 0), max(r.H-2, 0))
	dc.Stroke()
}
