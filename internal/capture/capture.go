// Package capture grabs the desktop image that annotations are drawn over
// and exposes the window hierarchy under it for element inspection.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"slices"
	"strconv"
	"strings"
)

// Options controls how the backdrop is captured.
type Options struct {
	// Display selects a monitor by index, name or "primary". Empty means
	// the whole desktop.
	Display string
	// IncludeCursor asks the portal to embed the pointer.
	IncludeCursor bool
}

// MonitorInfo describes an individual monitor in the X11 layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var errNoMonitors = errors.New("no monitors available")

// Backends, replaced in tests.
var (
	x11ScreenshotFn    = x11Screenshot
	portalScreenshotFn = portalScreenshot
	listMonitorsFn     = ListMonitors
)

// Screenshot captures the desktop from the X11 root window, or through
// the desktop portal when X11 is unavailable. With opts.Display set the
// result is cropped to that monitor.
func Screenshot(opts Options) (*image.RGBA, error) {
	img, err := x11ScreenshotFn()
	if err != nil {
		var perr error
		if img, perr = portalScreenshotFn(opts); perr != nil {
			return nil, fmt.Errorf("x11 capture: %v; portal fallback: %w", err, perr)
		}
	}
	if opts.Display == "" {
		return img, nil
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, err
	}
	mon, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	area := mon.Rect.Intersect(img.Bounds())
	if area.Empty() {
		return nil, fmt.Errorf("monitor %s lies outside the captured image", mon.Name)
	}
	out := image.NewRGBA(image.Rectangle{Max: area.Size()})
	draw.Draw(out, out.Bounds(), img, area.Min, draw.Src)
	return out, nil
}

// FindMonitor picks a monitor by selector: empty for the first one,
// "primary", an index with optional leading #, or a case-insensitive
// part of the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		if i := slices.IndexFunc(monitors, func(m MonitorInfo) bool { return m.Primary }); i >= 0 {
			return monitors[i], nil
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range (have %d)", idx, len(monitors))
		}
		return monitors[idx], nil
	}
	i := slices.IndexFunc(monitors, func(m MonitorInfo) bool {
		return strings.Contains(strings.ToLower(m.Name), sel)
	})
	if i < 0 {
		return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
	}
	return monitors[i], nil
}
