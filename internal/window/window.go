// Package window hosts the annotation canvas in a native shiny window and
// feeds its mouse and keyboard input to the controller.
package window

import (
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/render"
	"github.com/example/spotlightdraw/internal/script"
)

// App holds the window configuration.
type App struct {
	runner *script.Runner
	canvas *render.Canvas
	title  string
	save   func() error
	copy   func() error

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithSave sets the action bound to Ctrl+S.
func WithSave(fn func() error) Option { return func(a *App) { a.save = fn } }

// WithCopy sets the action bound to Ctrl+C.
func WithCopy(fn func() error) Option { return func(a *App) { a.copy = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App that draws canvas and sends input through runner.
func New(runner *script.Runner, canvas *render.Canvas, opts ...Option) *App {
	a := &App{
		runner:   runner,
		canvas:   canvas,
		title:    "SpotlightDraw",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Invalidate requests a repaint. It never blocks.
func (a *App) Invalidate() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	width, height := a.canvas.Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	a.canvas.SetOnChange(a.Invalidate)
	defer a.canvas.SetOnChange(nil)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	paintCh := make(chan render.Frame, 1)
	defer close(paintCh)
	go func() {
		for f := range paintCh {
			drawFrame(s, w, f)
		}
	}()

	// Alt+F is consumed by the toggle, so its release must be too.
	swallowF := false

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.canvas.Resize(e.WidthPx, e.HeightPx)
			a.runner.Do(func(c *interaction.Controller) {
				c.SetViewport(geometry.Size{W: float64(e.WidthPx), H: float64(e.HeightPx)})
			})
		case paint.Event:
			f := a.canvas.Snapshot()
			select {
			case paintCh <- f:
			default:
				// Replace the stale frame the painter has not picked up.
				select {
				case <-paintCh:
				default:
				}
				paintCh <- f
			}
		case mouse.Event:
			ev, ok := translatePointer(e)
			if !ok {
				continue
			}
			a.runner.Do(func(c *interaction.Controller) { c.HandlePointer(ev) })
		case key.Event:
			switch hotkeyFor(e) {
			case hotkeyToggle:
				swallowF = true
				a.runner.Toggle()
				continue
			case hotkeySave:
				a.run("save", a.save)
				continue
			case hotkeyCopy:
				a.run("copy", a.copy)
				continue
			case hotkeyQuit:
				return
			}
			if swallowF && e.Code == key.CodeF {
				if e.Direction == key.DirRelease {
					swallowF = false
				}
				continue
			}
			ev, ok := translateKey(e)
			if !ok {
				continue
			}
			a.runner.HandleKey(ev)
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *App) run(name string, fn func() error) {
	if fn == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("%s: %v", name, err)
	}
}

func drawFrame(s screen.Screen, w screen.Window, f render.Frame) {
	b, err := s.NewBuffer(image.Point{f.Width, f.Height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	f.RenderInto(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
