// Package clipboard publishes annotated images and rectangle listings to
// the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	textclip "github.com/atotto/clipboard"
)

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard image operations are not supported on this platform")
	errNoImage     = errors.New("clipboard does not contain image data")
)

// imageStore holds PNG bytes on behalf of WriteImage and ReadImage.
type imageStore interface {
	put(data []byte)
	get() []byte
}

// openStore is replaced in tests.
var openStore = openImageStore

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage publishes img to the clipboard as a PNG.
func WriteImage(img image.Image) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	store.put(buf.Bytes())
	return nil
}

// ReadImage decodes the PNG currently on the clipboard.
func ReadImage() (image.Image, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	data := store.get()
	if len(data) == 0 {
		return nil, errNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}

// WriteText writes text to the clipboard through the platform helper
// (xclip, xsel or wl-copy on unix systems).
func WriteText(text string) error {
	if textclip.Unsupported {
		return errors.New("no clipboard helper found for text")
	}
	return textclip.WriteAll(text)
}
