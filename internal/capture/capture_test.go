package capture

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/example/spotlightdraw/internal/geometry"
)

func stubBackends(t *testing.T, x11 func() (*image.RGBA, error), portal func(Options) (*image.RGBA, error), monitors []MonitorInfo) {
	t.Helper()
	prevX11, prevPortal, prevList := x11ScreenshotFn, portalScreenshotFn, listMonitorsFn
	t.Cleanup(func() {
		x11ScreenshotFn = prevX11
		portalScreenshotFn = prevPortal
		listMonitorsFn = prevList
	})
	x11ScreenshotFn = x11
	portalScreenshotFn = portal
	listMonitorsFn = func() ([]MonitorInfo, error) {
		if len(monitors) == 0 {
			return nil, errNoMonitors
		}
		return monitors, nil
	}
}

func TestScreenshotPrefersX11(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 4, 4))
	stubBackends(t,
		func() (*image.RGBA, error) { return want, nil },
		func(Options) (*image.RGBA, error) {
			t.Fatalf("portal should not be used when X11 succeeds")
			return nil, nil
		}, nil)

	got, err := Screenshot(Options{})
	if err != nil {
		t.Fatalf("Screenshot returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected X11 image")
	}
}

func TestScreenshotFallsBackToPortal(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var gotOpts Options
	stubBackends(t,
		func() (*image.RGBA, error) { return nil, errors.New("no display") },
		func(opts Options) (*image.RGBA, error) {
			gotOpts = opts
			return want, nil
		}, nil)

	got, err := Screenshot(Options{IncludeCursor: true})
	if err != nil {
		t.Fatalf("Screenshot returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected portal result")
	}
	if !gotOpts.IncludeCursor {
		t.Fatalf("options not passed to portal: %+v", gotOpts)
	}
}

func TestScreenshotReportsBothFailures(t *testing.T) {
	portalErr := errors.New("portal gone")
	stubBackends(t,
		func() (*image.RGBA, error) { return nil, errors.New("no display") },
		func(Options) (*image.RGBA, error) { return nil, portalErr }, nil)

	_, err := Screenshot(Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, portalErr) {
		t.Fatalf("expected wrapped portal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no display") {
		t.Fatalf("expected X11 error in message, got %v", err)
	}
}

func TestScreenshotCropsToMonitor(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 200, 100))
	full.Set(150, 20, color.RGBA{R: 255, A: 255})
	monitors := []MonitorInfo{
		{Index: 0, Name: "DP-1", Rect: image.Rect(0, 0, 100, 100), Primary: true},
		{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 200, 100)},
	}
	stubBackends(t,
		func() (*image.RGBA, error) { return full, nil },
		func(Options) (*image.RGBA, error) { return nil, errors.New("unused") },
		monitors)

	got, err := Screenshot(Options{Display: "hdmi"})
	if err != nil {
		t.Fatalf("Screenshot returned error: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if c := got.RGBAAt(50, 20); c.R != 255 {
		t.Fatalf("crop offset wrong, pixel %v", c)
	}

	if _, err := Screenshot(Options{Display: "7"}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "eDP-1"},
		{Index: 1, Name: "DP-2", Primary: true},
	}
	tests := []struct {
		selector string
		want     int
		wantErr  bool
	}{
		{"", 0, false},
		{"primary", 1, false},
		{"1", 1, false},
		{"#0", 0, false},
		{"edp", 0, false},
		{"2", 0, true},
		{"HDMI", 0, true},
	}
	for _, tt := range tests {
		got, err := FindMonitor(monitors, tt.selector)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FindMonitor(%q) expected error", tt.selector)
			}
			continue
		}
		if err != nil {
			t.Errorf("FindMonitor(%q) error: %v", tt.selector, err)
			continue
		}
		if got.Index != tt.want {
			t.Errorf("FindMonitor(%q) = %d, want %d", tt.selector, got.Index, tt.want)
		}
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Errorf("empty list error %v", err)
	}
}

func sampleTree() (*Tree, *Window, *Window, *Window) {
	root := &Window{ID: 1, Rect: geometry.R(0, 0, 1000, 800)}
	back := root.AddChild(&Window{ID: 2, Title: "back", Rect: geometry.R(100, 100, 400, 400)})
	front := root.AddChild(&Window{ID: 3, Title: "front", Rect: geometry.R(300, 300, 400, 300)})
	button := front.AddChild(&Window{ID: 4, Title: "ok", Rect: geometry.R(320, 320, 80, 30)})
	return &Tree{Root: root}, back, front, button
}

func TestTreeElementAt(t *testing.T) {
	tree, back, front, button := sampleTree()
	tests := []struct {
		name string
		p    geometry.Point
		want *Window
	}{
		{"back only", geometry.Point{X: 150, Y: 150}, back},
		{"overlap picks top", geometry.Point{X: 350, Y: 450}, front},
		{"deepest", geometry.Point{X: 330, Y: 330}, button},
		{"root", geometry.Point{X: 900, Y: 50}, tree.Root},
	}
	for _, tt := range tests {
		got := tree.ElementAt(tt.p)
		if got != tt.want {
			t.Errorf("%s: got %v, want window %d", tt.name, got, tt.want.ID)
		}
	}
	if got := tree.ElementAt(geometry.Point{X: -5, Y: 10}); got != nil {
		t.Errorf("outside root returned %v", got)
	}
	var empty *Tree
	if got := empty.ElementAt(geometry.Point{}); got != nil {
		t.Errorf("nil tree returned %v", got)
	}
}

func TestWindowRelations(t *testing.T) {
	tree, back, front, button := sampleTree()
	if tree.Root.Parent() != nil {
		t.Fatalf("root parent should be nil")
	}
	if button.Parent() != front {
		t.Fatalf("button parent %v", button.Parent())
	}
	sibs := back.Siblings()
	if len(sibs) != 2 || sibs[0] != back || sibs[1] != front {
		t.Fatalf("siblings %v", sibs)
	}
	if got := tree.Root.Siblings(); len(got) != 1 || got[0] != tree.Root {
		t.Fatalf("root siblings %v", got)
	}
}

func TestTranslate(t *testing.T) {
	tree, _, front, button := sampleTree()
	tree.Root.Translate(-100, -50)
	if front.Bounds() != geometry.R(200, 250, 400, 300) {
		t.Fatalf("front %v", front.Bounds())
	}
	if button.Bounds() != geometry.R(220, 270, 80, 30) {
		t.Fatalf("button %v", button.Bounds())
	}
	if got := tree.ElementAt(geometry.Point{X: 230, Y: 280}); got != button {
		t.Fatalf("hit after translate %v", got)
	}
}
