//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/example/spotlightdraw/internal/geometry"
)

// display is an open X connection with its default screen.
type display struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
}

func openDisplay() (*display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	d := &display{conn: conn, setup: xproto.Setup(conn)}
	if d.setup != nil {
		d.screen = d.setup.DefaultScreen(conn)
	}
	if d.screen == nil {
		conn.Close()
		return nil, errors.New("X server reported no default screen")
	}
	return d, nil
}

func (d *display) Close() { d.conn.Close() }

func (d *display) size() (int, int) {
	return int(d.screen.WidthInPixels), int(d.screen.HeightInPixels)
}

func x11Screenshot() (*image.RGBA, error) {
	d, err := openDisplay()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	w, h := d.size()
	reply, err := xproto.GetImage(d.conn, xproto.ImageFormatZPixmap, xproto.Drawable(d.screen.Root),
		0, 0, uint16(w), uint16(h), ^uint32(0)).Reply()
	if err == nil {
		var img *image.RGBA
		if img, err = zpixmapToRGBA(d.setup, reply, w, h); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("root window pixels: %w", err)
}

// ListMonitors reports the active RandR outputs in server order.
func ListMonitors() ([]MonitorInfo, error) {
	d, err := openDisplay()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if err := randr.Init(d.conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(d.conn, d.screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	var primary randr.Output
	if p, err := randr.GetOutputPrimary(d.conn, d.screen.Root).Reply(); err == nil {
		primary = p.Output
	}

	var monitors []MonitorInfo
	for _, out := range res.Outputs {
		name, rect, ok := outputRect(d.conn, out, res.ConfigTimestamp)
		if !ok {
			continue
		}
		monitors = append(monitors, MonitorInfo{Index: len(monitors), Name: name, Rect: rect, Primary: out == primary})
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

// outputRect returns the name and desktop area of a connected output
// driving a CRTC.
func outputRect(conn *xgb.Conn, out randr.Output, ts xproto.Timestamp) (string, image.Rectangle, bool) {
	info, err := randr.GetOutputInfo(conn, out, ts).Reply()
	if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
		return "", image.Rectangle{}, false
	}
	crtc, err := randr.GetCrtcInfo(conn, info.Crtc, ts).Reply()
	if err != nil {
		return "", image.Rectangle{}, false
	}
	at := image.Pt(int(crtc.X), int(crtc.Y))
	return strings.TrimSpace(string(info.Name)), image.Rectangle{Min: at, Max: at.Add(image.Pt(int(crtc.Width), int(crtc.Height)))}, true
}

// LoadWindowTree snapshots the mapped windows below the root. Rectangles
// are made relative to origin, the top left corner of the captured image.
func LoadWindowTree(origin image.Point) (*Tree, error) {
	d, err := openDisplay()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	w, h := d.size()
	root := &Window{ID: uint32(d.screen.Root), Rect: geometry.R(0, 0, float64(w), float64(h))}
	if err := loadChildren(d.conn, d.screen.Root, root, 0); err != nil {
		return nil, err
	}
	root.Translate(-float64(origin.X), -float64(origin.Y))
	return &Tree{Root: root}, nil
}

// maxDepth bounds the walk; toolkits nest deeply but rarely past this.
const maxDepth = 32

func loadChildren(conn *xgb.Conn, root xproto.Window, parent *Window, depth int) error {
	if depth >= maxDepth {
		return nil
	}
	tree, err := xproto.QueryTree(conn, xproto.Window(parent.ID)).Reply()
	if err != nil {
		return fmt.Errorf("query tree 0x%x: %w", parent.ID, err)
	}
	for _, child := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(conn, child).Reply()
		if err != nil || attrs.MapState != xproto.MapStateViewable || attrs.Class == xproto.WindowClassInputOnly {
			continue
		}
		rect, err := windowRect(conn, root, child)
		if err != nil || rect.Empty() {
			continue
		}
		w := parent.AddChild(&Window{
			ID:    uint32(child),
			Title: windowTitle(conn, child),
			Rect:  geometry.R(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy())),
		})
		if err := loadChildren(conn, root, w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func windowRect(conn *xgb.Conn, root xproto.Window, win xproto.Window) (image.Rectangle, error) {
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x := int(trans.DstX) - int(geo.BorderWidth)
	y := int(trans.DstY) - int(geo.BorderWidth)
	width := int(geo.Width) + int(geo.BorderWidth)*2
	height := int(geo.Height) + int(geo.BorderWidth)*2
	return image.Rect(x, y, x+width, y+height), nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func windowTitle(conn *xgb.Conn, win xproto.Window) string {
	if title := readProperty(conn, win, "_NET_WM_NAME", "UTF8_STRING"); title != "" {
		return title
	}
	return readProperty(conn, win, "WM_NAME", "")
}

// readProperty reads a text property; an empty typeName means STRING.
func readProperty(conn *xgb.Conn, win xproto.Window, name, typeName string) string {
	atom, err := internAtom(conn, name)
	if err != nil || atom == xproto.AtomNone {
		return ""
	}
	typ := xproto.Atom(xproto.AtomString)
	if typeName != "" {
		if typ, err = internAtom(conn, typeName); err != nil {
			return ""
		}
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, typ, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}
