package render

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/prefs"
	"github.com/example/spotlightdraw/internal/store"
	"github.com/example/spotlightdraw/internal/theme"
)

const (
	helpPadding = 20
	helpLine    = 19
	helpColumn  = 24
)

type helpRow struct {
	heading bool
	key     string
	text    string
}

// SettingsRows describes p the way the help overlay shows it.
func SettingsRows(p prefs.Preferences) []interaction.Shortcut {
	snapState := "off"
	if p.SnapEnabled {
		snapState = "on"
	}
	return []interaction.Shortcut{
		{Keys: "Border width", Description: fmt.Sprintf("%gpx", p.BorderWidth)},
		{Keys: "Default color", Description: store.ColorName(p.DefaultColor)},
		{Keys: "Snap to edges", Description: snapState},
	}
}

func helpRows(settings *prefs.Preferences) []helpRow {
	var rows []helpRow
	groups := interaction.Shortcuts
	if settings != nil {
		groups = append(groups[:len(groups):len(groups)], interaction.ShortcutGroup{
			Title:     "Settings",
			Shortcuts: SettingsRows(*settings),
		})
	}
	for _, g := range groups {
		rows = append(rows, helpRow{heading: true, text: g.Title})
		for _, s := range g.Shortcuts {
			rows = append(rows, helpRow{key: s.Keys, text: s.Description})
		}
	}
	return rows
}

// drawHelp paints the shortcut panel centered on the canvas. Rows that do
// not fit vertically are dropped from the bottom.
func drawHelp(dc *gg.Context, th *theme.Theme, settings *prefs.Preferences) {
	rows := helpRows(settings)

	dc.SetFontFace(face(helpSize))
	var keyW, textW float64
	for _, r := range rows {
		if r.heading {
			continue
		}
		if w, _ := dc.MeasureString(r.key); w > keyW {
			keyW = w
		}
		if w, _ := dc.MeasureString(r.text); w > textW {
			textW = w
		}
	}

	cw, ch := float64(dc.Width()), float64(dc.Height())
	panelW := keyW + helpColumn + textW + 2*helpPadding
	panelH := float64(len(rows)+1)*helpLine + 2*helpPadding
	if panelH > ch-20 {
		visible := int((ch-20-2*helpPadding)/helpLine) - 1
		if visible < 0 {
			visible = 0
		}
		if visible < len(rows) {
			rows = rows[:visible]
		}
		panelH = float64(len(rows)+1)*helpLine + 2*helpPadding
	}
	x := (cw - panelW) / 2
	y := (ch - panelH) / 2

	dc.SetColor(th.HelpBackground)
	dc.DrawRoundedRectangle(x, y, panelW, panelH, 10)
	dc.Fill()

	dc.SetFontFace(face(headingSize))
	dc.SetColor(th.HelpHeading)
	ty := y + helpPadding + helpLine/2
	dc.DrawStringAnchored("Keyboard Shortcuts", x+panelW/2, ty, 0.5, 0.35)

	for _, r := range rows {
		ty += helpLine
		if r.heading {
			dc.SetFontFace(face(helpSize))
			dc.SetColor(th.HelpHeading)
			dc.DrawStringAnchored(r.text, x+helpPadding, ty, 0, 0.35)
			continue
		}
		dc.SetColor(th.HelpKey)
		dc.DrawStringAnchored(r.key, x+helpPadding, ty, 0, 0.35)
		dc.SetColor(th.HelpText)
		dc.DrawStringAnchored(r.text, x+helpPadding+keyW+helpColumn, ty, 0, 0.35)
	}
}
