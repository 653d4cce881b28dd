//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func x11Screenshot() (*image.RGBA, error) {
	return nil, fmt.Errorf("x11 capture is not supported on this platform")
}

func portalScreenshot(Options) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal screenshot is not supported on this platform")
}

// ListMonitors is not supported on this platform.
func ListMonitors() ([]MonitorInfo, error) {
	return nil, errNoMonitors
}

// LoadWindowTree is not supported on this platform.
func LoadWindowTree(image.Point) (*Tree, error) {
	return nil, fmt.Errorf("window inspection is not supported on this platform")
}
