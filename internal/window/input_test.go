package window

import (
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
)

func TestTranslatePointer(t *testing.T) {
	tests := []struct {
		name string
		in   mouse.Event
		want interaction.PointerEvent
		ok   bool
	}{
		{
			name: "left press",
			in:   mouse.Event{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress},
			want: interaction.PointerEvent{Kind: interaction.PointerDown, Point: geometry.Pt(10, 20), Button: interaction.ButtonPrimary},
			ok:   true,
		},
		{
			name: "right release with shift",
			in:   mouse.Event{X: 1, Y: 2, Button: mouse.ButtonRight, Direction: mouse.DirRelease, Modifiers: key.ModShift},
			want: interaction.PointerEvent{Kind: interaction.PointerUp, Point: geometry.Pt(1, 2), Button: interaction.ButtonSecondary, Mods: interaction.ModShift},
			ok:   true,
		},
		{
			name: "move",
			in:   mouse.Event{X: 5.5, Y: 6, Modifiers: key.ModControl | key.ModAlt},
			want: interaction.PointerEvent{Kind: interaction.PointerMove, Point: geometry.Pt(5.5, 6), Mods: interaction.ModCtrl | interaction.ModAlt},
			ok:   true,
		},
		{
			name: "wheel",
			in:   mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep},
			ok:   false,
		},
	}
	for _, tt := range tests {
		got, ok := translatePointer(tt.in)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   key.Event
		want interaction.KeyEvent
		ok   bool
	}{
		{key.Event{Code: key.CodeSpacebar, Direction: key.DirPress}, interaction.KeyEvent{Key: interaction.KeySpace, Down: true}, true},
		{key.Event{Code: key.CodeRightShift, Direction: key.DirRelease}, interaction.KeyEvent{Key: interaction.KeyShift}, true},
		{key.Event{Code: key.CodeLeftArrow, Direction: key.DirNone}, interaction.KeyEvent{Key: interaction.KeyLeft, Down: true}, true},
		{key.Event{Rune: '?', Code: key.CodeSlash, Direction: key.DirPress, Modifiers: key.ModShift}, interaction.KeyEvent{Key: interaction.KeyQuestion, Down: true, Mods: interaction.ModShift}, true},
		{key.Event{Code: key.CodeLeftGUI, Direction: key.DirPress, Modifiers: key.ModMeta}, interaction.KeyEvent{Key: interaction.KeyMeta, Down: true, Mods: interaction.ModMeta}, true},
		{key.Event{Rune: 'z', Code: key.CodeZ, Direction: key.DirPress}, interaction.KeyEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := translateKey(tt.in)
		if ok != tt.ok {
			t.Errorf("%v: ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%v: got %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHotkeys(t *testing.T) {
	tests := []struct {
		in   key.Event
		want hotkey
	}{
		{key.Event{Code: key.CodeF, Modifiers: key.ModAlt, Direction: key.DirPress}, hotkeyToggle},
		{key.Event{Code: key.CodeF, Modifiers: key.ModAlt, Direction: key.DirRelease}, hotkeyNone},
		{key.Event{Code: key.CodeF, Direction: key.DirPress}, hotkeyNone},
		{key.Event{Code: key.CodeS, Modifiers: key.ModControl, Direction: key.DirPress}, hotkeySave},
		{key.Event{Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}, hotkeyCopy},
		{key.Event{Code: key.CodeQ, Modifiers: key.ModControl, Direction: key.DirPress}, hotkeyQuit},
	}
	for _, tt := range tests {
		if got := hotkeyFor(tt.in); got != tt.want {
			t.Errorf("%v: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInvalidateNeverBlocks(t *testing.T) {
	a := New(nil, nil)
	for i := 0; i < 3; i++ {
		a.Invalidate()
	}
	if len(a.updateCh) != 1 {
		t.Fatalf("pending updates %d", len(a.updateCh))
	}
}
