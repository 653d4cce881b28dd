package interaction

import (
	"strings"

	"github.com/example/spotlightdraw/internal/geometry"
)

// Mods is the set of modifier keys held during an event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m2 is held.
func (m Mods) Has(m2 Mods) bool { return m&m2 == m2 }

// CtrlOrMeta reports whether either command modifier is held.
func (m Mods) CtrlOrMeta() bool { return m&(ModCtrl|ModMeta) != 0 }

func (m Mods) String() string {
	var parts []string
	for _, p := range []struct {
		m    Mods
		name string
	}{{ModShift, "shift"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModMeta, "meta"}} {
		if m.Has(p.m) {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}

// PointerKind distinguishes press, motion and release.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// Button identifies the pressed pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	// ButtonSecondary adds to the existing rectangles like Shift does.
	ButtonSecondary
)

// PointerEvent is a mouse press, move or release in viewport pixels.
type PointerEvent struct {
	Kind   PointerKind
	Point  geometry.Point
	Button Button
	Mods   Mods
}

// Key names the keys the controller reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyShift
	KeyCtrl
	KeyAlt
	KeyMeta
	KeySpace
	KeyEscape
	KeyTab
	KeyDelete
	KeyBackspace
	KeyU
	KeyF
	KeyQuestion
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeyShift:     "shift",
	KeyCtrl:      "ctrl",
	KeyAlt:       "alt",
	KeyMeta:      "meta",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeyU:         "u",
	KeyF:         "f",
	KeyQuestion:  "?",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "other"
}

// KeyByName resolves a key name as printed by Key.String. Lookups ignore
// case and accept a few common aliases.
func KeyByName(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "esc":
		return KeyEscape, true
	case "del":
		return KeyDelete, true
	case "control":
		return KeyCtrl, true
	case "cmd", "super":
		return KeyMeta, true
	case " ", "spacebar":
		return KeySpace, true
	case "question":
		return KeyQuestion, true
	case "arrowup":
		return KeyUp, true
	case "arrowdown":
		return KeyDown, true
	case "arrowleft":
		return KeyLeft, true
	case "arrowright":
		return KeyRight, true
	}
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyOther, false
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key  Key
	Down bool
	Mods Mods
}
