//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = "/org/freedesktop/portal/desktop"
	portalMethod   = "org.freedesktop.portal.Screenshot.Screenshot"
	portalResponse = "org.freedesktop.portal.Request.Response"
	portalTimeout  = 30 * time.Second
)

var portalHandleToken = func() string {
	return fmt.Sprintf("spotlightdraw_%d", time.Now().UnixNano())
}

// portalScreenshot asks xdg-desktop-portal for a non-interactive
// screenshot and waits for the Request object to answer.
func portalScreenshot(opts Options) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("dbus close: %v", err)
		}
	}()

	var handle dbus.ObjectPath
	err = conn.Object(portalDest, portalPath).
		Call(portalMethod, 0, "", portalScreenshotOptions(opts)).
		Store(&handle)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", err)
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)
	match := []dbus.MatchOption{dbus.WithMatchObjectPath(handle), dbus.WithMatchMember("Response")}
	if err := conn.AddMatchSignal(match...); err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer func() {
		if err := conn.RemoveMatchSignal(match...); err != nil {
			log.Printf("portal unsubscribe: %v", err)
		}
	}()

	path, err := awaitResponse(signals, handle, time.After(portalTimeout))
	if err != nil {
		return nil, err
	}
	img, err := takePNG(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	return img, nil
}

func awaitResponse(signals <-chan *dbus.Signal, handle dbus.ObjectPath, timeout <-chan time.Time) (string, error) {
	for {
		select {
		case sig := <-signals:
			if sig.Path == handle && sig.Name == portalResponse {
				return portalResponsePath(sig.Body)
			}
		case <-timeout:
			return "", fmt.Errorf("portal screenshot: no response after %s", portalTimeout)
		}
	}
}

// portalResponsePath reads the file path out of a Response signal body
// (code uint32, results a{sv}). Any code but 0 means the request was
// denied or cancelled.
func portalResponsePath(body []any) (string, error) {
	if len(body) < 2 {
		return "", errors.New("portal screenshot: short response")
	}
	if code, _ := body[0].(uint32); code != 0 {
		return "", fmt.Errorf("portal screenshot: request denied (code %d)", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal screenshot: unexpected response type %T", body[1])
	}
	v, ok := results["uri"]
	if !ok {
		return "", errors.New("portal screenshot: response missing image data")
	}
	raw, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("portal screenshot: uri is %T", v.Value())
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return "", fmt.Errorf("portal screenshot: unusable uri %q", raw)
	}
	return u.Path, nil
}

func portalScreenshotOptions(opts Options) map[string]dbus.Variant {
	cursor := "hidden"
	if opts.IncludeCursor {
		cursor = "embedded"
	}
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(false),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"cursor_mode":  dbus.MakeVariant(cursor),
	}
}

// takePNG decodes the portal's temporary file and removes it.
func takePNG(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		log.Printf("remove %s: %v", path, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
