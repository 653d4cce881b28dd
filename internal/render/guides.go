package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/snap"
	"github.com/example/spotlightdraw/internal/theme"
)

const (
	tickSize       = 4
	dimensionInset = 8
)

func drawGuide(dc *gg.Context, th *theme.Theme, g snap.Guide) {
	dc.Push()
	defer dc.Pop()
	dc.SetLineWidth(1)
	switch g.Kind {
	case snap.Align:
		dc.SetColor(th.AlignGuide)
		w, h := float64(dc.Width()), float64(dc.Height())
		// Half-pixel offset keeps a one pixel line crisp.
		pos := math.Floor(g.Pos) + 0.5
		if g.Axis == snap.AxisX {
			dc.DrawLine(pos, 0, pos, h)
		} else {
			dc.DrawLine(0, pos, w, pos)
		}
		dc.Stroke()
	case snap.Spacing:
		across := (spanCenter(g.Refs[0], g.Axis) + spanCenter(g.Refs[1], g.Axis)) / 2
		measure(dc, th.SpacingGuide, th, g.Axis, g.Start, g.End, across, g.Gap)
	case snap.Dimension:
		ref := g.Refs[0]
		across := ref.Bottom() + dimensionInset
		if g.Axis == snap.AxisY {
			across = ref.Right() + dimensionInset
		}
		measure(dc, th.DimensionGuide, th, g.Axis, g.Start, g.End, across, g.End-g.Start)
	}
}

// spanCenter is the middle of r across the axis a guide measures along.
func spanCenter(r geometry.Rect, a snap.Axis) float64 {
	if a == snap.AxisX {
		return r.CenterY()
	}
	return r.CenterX()
}

// measure draws a span from start to end along a at the cross coordinate
// across, with end ticks and a size label.
func measure(dc *gg.Context, col color.RGBA, th *theme.Theme, a snap.Axis, start, end, across, size float64) {
	dc.SetColor(col)
	if a == snap.AxisX {
		dc.DrawLine(start, across, end, across)
		dc.DrawLine(start, across-tickSize, start, across+tickSize)
		dc.DrawLine(end, across-tickSize, end, across+tickSize)
	} else {
		dc.DrawLine(across, start, across, end)
		dc.DrawLine(across-tickSize, start, across+tickSize, start)
		dc.DrawLine(across-tickSize, end, across+tickSize, end)
	}
	dc.Stroke()

	mid := (start + end) / 2
	x, y := mid, across
	if a == snap.AxisY {
		x, y = across, mid
	}
	drawLabel(dc, th, strconv.FormatFloat(math.Round(size), 'f', -1, 64), x, y, col)
}

// drawLabel draws text centered on (x, y) over a pill in the accent color.
func drawLabel(dc *gg.Context, th *theme.Theme, text string, x, y float64, accent color.RGBA) {
	dc.SetFontFace(face(labelSize))
	w, h := dc.MeasureString(text)
	padX, padY := 4.0, 2.0
	dc.SetColor(th.LabelBackground)
	dc.DrawRoundedRectangle(x-w/2-padX, y-h/2-padY, w+2*padX, h+2*padY, 3)
	dc.Fill()
	dc.SetColor(accent)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x-w/2-padX, y-h/2-padY, w+2*padX, h+2*padY, 3)
	dc.Stroke()
	dc.SetColor(th.LabelText)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.35)
}
