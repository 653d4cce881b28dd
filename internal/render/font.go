package render

import (
	"log"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	labelSize   = 11
	helpSize    = 13
	headingSize = 15
)

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	faces    sync.Map // map[float64]font.Face
)

// face returns a gomono face at size points, falling back to the fixed
// 7x13 bitmap face if the embedded font cannot be parsed.
func face(size float64) font.Face {
	if f, ok := faces.Load(size); ok {
		return f.(font.Face)
	}
	monoOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("parse gomono: %v", err)
			return
		}
		monoFont = f
	})
	var f font.Face = basicfont.Face7x13
	if monoFont != nil {
		f = truetype.NewFace(monoFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	actual, _ := faces.LoadOrStore(size, f)
	return actual.(font.Face)
}
