package theme

import (
	"image/color"
)

// Theme defines the colors used to paint rectangles, guides and overlays.
type Theme struct {
	Name string

	// Rectangle outlines in palette order.
	RectOrange color.RGBA
	RectGreen  color.RGBA
	RectBlue   color.RGBA
	RectPurple color.RGBA
	RectPlain  color.RGBA
	RectShadow color.RGBA // Drop shadow under each outline

	// Snap guides
	AlignGuide     color.RGBA
	SpacingGuide   color.RGBA
	DimensionGuide color.RGBA

	Inspect color.RGBA // Outline of the inspected element

	// Help overlay
	HelpBackground color.RGBA
	HelpHeading    color.RGBA
	HelpText       color.RGBA
	HelpKey        color.RGBA

	// Canvas
	Background      color.RGBA // Used when there is no backdrop image
	LabelBackground color.RGBA
	LabelText       color.RGBA
}

// RectColor returns the outline color for a palette index, wrapping out of
// range values.
func (t *Theme) RectColor(idx int) color.RGBA {
	cols := [...]color.RGBA{t.RectOrange, t.RectGreen, t.RectBlue, t.RectPurple, t.RectPlain}
	n := len(cols)
	return cols[((idx%n)+n)%n]
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:            "Default",
		RectOrange:      color.RGBA{255, 107, 0, 255},
		RectGreen:       color.RGBA{34, 197, 94, 255},
		RectBlue:        color.RGBA{59, 130, 246, 255},
		RectPurple:      color.RGBA{168, 85, 247, 255},
		RectPlain:       color.RGBA{156, 163, 175, 255},
		RectShadow:      color.RGBA{0, 0, 0, 64},
		AlignGuide:      color.RGBA{255, 0, 128, 255},
		SpacingGuide:    color.RGBA{255, 51, 102, 255},
		DimensionGuide:  color.RGBA{0, 191, 255, 255},
		Inspect:         color.RGBA{0, 194, 255, 255},
		HelpBackground:  color.RGBA{30, 30, 30, 230},
		HelpHeading:     color.RGBA{255, 107, 0, 255},
		HelpText:        color.RGBA{235, 235, 235, 255},
		HelpKey:         color.RGBA{255, 255, 255, 255},
		Background:      color.RGBA{245, 245, 245, 255},
		LabelBackground: color.RGBA{255, 0, 128, 255},
		LabelText:       color.RGBA{255, 255, 255, 255},
	}
}
