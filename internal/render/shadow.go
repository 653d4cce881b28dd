package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by the rectangle layer.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	// Color tints the shadow. Its alpha is ignored in favour of Opacity.
	Color color.RGBA
}

// ShadowResult is a layer composited over its own shadow.
type ShadowResult struct {
	Image *image.RGBA
	// Offset is where the layer's top-left corner landed in Image.
	Offset image.Point
}

// ShadowFor derives the outline shadow from a theme color. A transparent
// color disables the shadow.
func ShadowFor(c color.RGBA) ShadowOptions {
	return ShadowOptions{
		Radius:  2,
		Offset:  image.Pt(1, 1),
		Opacity: float64(c.A) / 255,
		Color:   color.RGBA{c.R, c.G, c.B, 255},
	}
}

// ApplyShadow draws img over a blurred, tinted copy of its alpha shifted by
// opts.Offset. The result is zero based and grows to hold both.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	opacity := min(opts.Opacity, 1)
	if img.Bounds().Empty() || opacity <= 0 {
		return ShadowResult{Image: img}
	}
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	cast := padded.Add(opts.Offset)
	all := src.Union(cast)

	mask := alphaMask(img, padded)
	boxBlur(mask, radius)

	dst := image.NewRGBA(all.Sub(all.Min))
	tint := premultiply(color.RGBA{opts.Color.R, opts.Color.G, opts.Color.B, uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(cast.Min.Sub(all.Min)), image.NewUniform(tint), image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(all.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: src.Min.Sub(all.Min)}
}

// alphaMask copies the alpha channel of img into a zero based mask covering
// area.
func alphaMask(img *image.RGBA, area image.Rectangle) *image.Gray {
	mask := image.NewGray(area.Sub(area.Min))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if a := img.Pix[img.PixOffset(x, y)+3]; a != 0 {
				mask.Pix[mask.PixOffset(x-area.Min.X, y-area.Min.Y)] = a
			}
		}
	}
	return mask
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// boxBlur averages m in place over a (2*radius+1) square, rows first then
// columns. Windows are clipped at the edges.
func boxBlur(m *image.Gray, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		blurLine(m.Pix, y*m.Stride, 1, w, radius, prefix)
	}
	for x := 0; x < w; x++ {
		blurLine(m.Pix, x, m.Stride, h, radius, prefix)
	}
}

// blurLine averages the n samples at pix[off], pix[off+step], ...
func blurLine(pix []uint8, off, step, n, radius int, prefix []int) {
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(pix[off+i*step])
	}
	for i := 0; i < n; i++ {
		lo, hi := max(i-radius, 0), min(i+radius, n-1)
		pix[off+i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
