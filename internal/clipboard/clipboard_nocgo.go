//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import "errors"

var errCGODisabled = errors.New("clipboard image operations require cgo support")

func openImageStore() (imageStore, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	return nil, errCGODisabled
}
