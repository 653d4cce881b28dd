//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

type systemStore struct{}

func (systemStore) put(data []byte) { clipboard.Write(clipboard.FmtImage, data) }
func (systemStore) get() []byte     { return clipboard.Read(clipboard.FmtImage) }

func openImageStore() (imageStore, error) {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return nil, initErr
	}
	return systemStore{}, nil
}
