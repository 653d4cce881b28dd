package hittest

import (
	"testing"

	"github.com/example/spotlightdraw/internal/geometry"
)

type rects []geometry.Rect

func (r rects) Len() int { return len(r) }

func (r rects) BoundsAt(i int) geometry.Rect { return r[i] }

func TestRectangleAtPrefersTopmost(t *testing.T) {
	c := rects{geometry.R(0, 0, 100, 100), geometry.R(50, 50, 100, 100)}
	if got := RectangleAt(c, geometry.Pt(75, 75)); got != 1 {
		t.Fatalf("overlap hit %d, want 1", got)
	}
	if got := RectangleAt(c, geometry.Pt(10, 10)); got != 0 {
		t.Fatalf("lower hit %d, want 0", got)
	}
	if got := RectangleAt(c, geometry.Pt(100, 0)); got != 0 {
		t.Fatalf("edge hit %d, want 0", got)
	}
	if got := RectangleAt(c, geometry.Pt(300, 300)); got != -1 {
		t.Fatalf("miss returned %d", got)
	}
}

func TestHandleAt(t *testing.T) {
	c := rects{geometry.R(100, 100, 200, 100)}
	tests := []struct {
		p    geometry.Point
		want geometry.Handle
	}{
		{geometry.Pt(100, 100), geometry.HandleNW},
		{geometry.Pt(305, 95), geometry.HandleNE},
		{geometry.Pt(96, 204), geometry.HandleSW},
		{geometry.Pt(300, 200), geometry.HandleSE},
		{geometry.Pt(200, 103), geometry.HandleN},
		{geometry.Pt(200, 198), geometry.HandleS},
		{geometry.Pt(94, 150), geometry.HandleW},
		{geometry.Pt(306, 150), geometry.HandleE},
	}
	for _, tt := range tests {
		idx, h, ok := HandleAt(c, tt.p)
		if !ok || idx != 0 || h != tt.want {
			t.Errorf("HandleAt(%v) = %d %v %v, want %v", tt.p, idx, h, ok, tt.want)
		}
	}
	if _, _, ok := HandleAt(c, geometry.Pt(200, 150)); ok {
		t.Fatal("interior point matched a handle")
	}
	if _, _, ok := HandleAt(c, geometry.Pt(200, 90)); ok {
		t.Fatal("point outside zone matched a handle")
	}
}

func TestHandleAtInteriorOccludes(t *testing.T) {
	// The lower rectangle's right edge sits under the middle of the upper one.
	c := rects{geometry.R(0, 0, 150, 100), geometry.R(100, 0, 200, 100)}
	if _, _, ok := HandleAt(c, geometry.Pt(150, 50)); ok {
		t.Fatal("handle of occluded rectangle was reachable")
	}
	idx, h, ok := HandleAt(c, geometry.Pt(3, 50))
	if !ok || idx != 0 || h != geometry.HandleW {
		t.Fatalf("got %d %v %v", idx, h, ok)
	}
}
