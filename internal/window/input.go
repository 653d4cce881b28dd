package window

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
)

func translateMods(m key.Modifiers) interaction.Mods {
	var out interaction.Mods
	if m&key.ModShift != 0 {
		out |= interaction.ModShift
	}
	if m&key.ModControl != 0 {
		out |= interaction.ModCtrl
	}
	if m&key.ModAlt != 0 {
		out |= interaction.ModAlt
	}
	if m&key.ModMeta != 0 {
		out |= interaction.ModMeta
	}
	return out
}

// translatePointer converts a shiny mouse event. Wheel steps and unknown
// buttons are dropped.
func translatePointer(e mouse.Event) (interaction.PointerEvent, bool) {
	ev := interaction.PointerEvent{
		Point: geometry.Pt(float64(e.X), float64(e.Y)),
		Mods:  translateMods(e.Modifiers),
	}
	switch e.Direction {
	case mouse.DirNone:
		ev.Kind = interaction.PointerMove
		return ev, true
	case mouse.DirPress:
		ev.Kind = interaction.PointerDown
	case mouse.DirRelease:
		ev.Kind = interaction.PointerUp
	default:
		return ev, false
	}
	switch e.Button {
	case mouse.ButtonLeft:
		ev.Button = interaction.ButtonPrimary
	case mouse.ButtonMiddle:
		ev.Button = interaction.ButtonMiddle
	case mouse.ButtonRight:
		ev.Button = interaction.ButtonSecondary
	default:
		return ev, false
	}
	return ev, true
}

var keyCodes = map[key.Code]interaction.Key{
	key.CodeLeftShift:       interaction.KeyShift,
	key.CodeRightShift:      interaction.KeyShift,
	key.CodeLeftControl:     interaction.KeyCtrl,
	key.CodeRightControl:    interaction.KeyCtrl,
	key.CodeLeftAlt:         interaction.KeyAlt,
	key.CodeRightAlt:        interaction.KeyAlt,
	key.CodeLeftGUI:         interaction.KeyMeta,
	key.CodeRightGUI:        interaction.KeyMeta,
	key.CodeSpacebar:        interaction.KeySpace,
	key.CodeEscape:          interaction.KeyEscape,
	key.CodeTab:             interaction.KeyTab,
	key.CodeDeleteForward:   interaction.KeyDelete,
	key.CodeDeleteBackspace: interaction.KeyBackspace,
	key.CodeU:               interaction.KeyU,
	key.CodeF:               interaction.KeyF,
	key.CodeUpArrow:         interaction.KeyUp,
	key.CodeDownArrow:       interaction.KeyDown,
	key.CodeLeftArrow:       interaction.KeyLeft,
	key.CodeRightArrow:      interaction.KeyRight,
}

// translateKey converts a shiny key event. Auto-repeat arrives with
// DirNone and counts as another press.
func translateKey(e key.Event) (interaction.KeyEvent, bool) {
	k, ok := keyCodes[e.Code]
	if !ok && e.Rune == '?' {
		k, ok = interaction.KeyQuestion, true
	}
	if !ok {
		return interaction.KeyEvent{}, false
	}
	return interaction.KeyEvent{
		Key:  k,
		Down: e.Direction != key.DirRelease,
		Mods: translateMods(e.Modifiers),
	}, true
}

// hotkey is a window level action that never reaches the controller.
type hotkey int

const (
	hotkeyNone hotkey = iota
	hotkeyToggle
	hotkeySave
	hotkeyCopy
	hotkeyQuit
)

func hotkeyFor(e key.Event) hotkey {
	if e.Direction == key.DirRelease {
		return hotkeyNone
	}
	switch {
	case e.Code == key.CodeF && e.Modifiers&key.ModAlt != 0:
		return hotkeyToggle
	case e.Code == key.CodeS && e.Modifiers&key.ModControl != 0:
		return hotkeySave
	case e.Code == key.CodeC && e.Modifiers&key.ModControl != 0:
		return hotkeyCopy
	case e.Code == key.CodeQ && e.Modifiers&key.ModControl != 0:
		return hotkeyQuit
	}
	return hotkeyNone
}
