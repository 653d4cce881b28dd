//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// pixelSize returns the bytes per pixel the server uses for depth.
func pixelSize(setup *xproto.SetupInfo, depth byte) (int, error) {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			if f.BitsPerPixel < 24 {
				return 0, fmt.Errorf("unsupported pixel format %d bpp", f.BitsPerPixel)
			}
			return int(f.BitsPerPixel) / 8, nil
		}
	}
	return 0, fmt.Errorf("unsupported depth %d", depth)
}

// zpixmapToRGBA converts a ZPixmap reply in BGR(X) order into an opaque
// RGBA image. Window contents carry no meaningful alpha.
func zpixmapToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	switch {
	case setup == nil:
		return nil, errors.New("xproto setup unavailable")
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("empty geometry %dx%d", width, height)
	case reply == nil || len(reply.Data) == 0:
		return nil, errors.New("empty image data")
	}
	bpp, err := pixelSize(setup, reply.Depth)
	if err != nil {
		return nil, err
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bpp {
		return nil, fmt.Errorf("unexpected stride %d for width %d", stride, width)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			s, d := src[x*bpp:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
		}
	}
	return img, nil
}
