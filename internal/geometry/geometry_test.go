package geometry

import "testing"

func TestClampToViewport(t *testing.T) {
	vp := Size{W: 800, H: 600}
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", R(10, 20, 100, 50), R(10, 20, 100, 50)},
		{"negative origin", R(-40, -5, 100, 50), R(0, 0, 100, 50)},
		{"past far edge", R(780, 590, 100, 50), R(700, 550, 100, 50)},
		{"wider than viewport", R(100, 0, 1000, 10), R(0, 0, 800, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToViewport(tt.in, vp)
			if got != tt.want {
				t.Fatalf("ClampToViewport(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if again := ClampToViewport(got, vp); again != got {
				t.Fatalf("clamp not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestClampPoint(t *testing.T) {
	vp := Size{W: 100, H: 50}
	if got := ClampPoint(Pt(-3, 70), vp); got != Pt(0, 50) {
		t.Fatalf("got %v", got)
	}
	if got := ClampPoint(Pt(100, 0), vp); got != Pt(100, 0) {
		t.Fatalf("edge point moved: %v", got)
	}
}

func TestDragRect(t *testing.T) {
	anchor := Pt(100, 100)
	tests := []struct {
		name    string
		current Point
		flags   DragFlags
		want    Rect
	}{
		{"plain", Pt(150, 130), DragFlags{}, R(100, 100, 50, 30)},
		{"plain reversed", Pt(60, 80), DragFlags{}, R(60, 80, 40, 20)},
		{"square", Pt(150, 120), DragFlags{Square: true}, R(100, 100, 50, 50)},
		{"square up left", Pt(90, 40), DragFlags{Square: true}, R(40, 40, 60, 60)},
		{"center", Pt(130, 110), DragFlags{FromCenter: true}, R(70, 90, 60, 20)},
		{"center square", Pt(130, 110), DragFlags{FromCenter: true, Square: true}, R(70, 70, 60, 60)},
		{
			"horizontal lock keeps captured height",
			Pt(200, 300),
			DragFlags{Lock: LockHorizontal, LockSize: Size{W: 40, H: 20}},
			R(100, 100, 100, 20),
		},
		{
			"horizontal lock above anchor",
			Pt(200, 10),
			DragFlags{Lock: LockHorizontal, LockSize: Size{W: 40, H: 20}},
			R(100, 80, 100, 20),
		},
		{
			"vertical lock from center",
			Pt(300, 160),
			DragFlags{Lock: LockVertical, LockSize: Size{W: 40, H: 50}, FromCenter: true},
			R(80, 40, 40, 120),
		},
		{"square unlocked", Pt(130, 300), DragFlags{Square: true}, R(100, 100, 200, 200)},
		{
			"horizontal lock before square",
			Pt(130, 300),
			DragFlags{Lock: LockHorizontal, LockSize: Size{W: 30, H: 20}, Square: true},
			R(100, 100, 30, 30),
		},
		{
			"vertical lock before square up left",
			Pt(10, 60),
			DragFlags{Lock: LockVertical, LockSize: Size{W: 30, H: 40}, Square: true},
			R(60, 60, 40, 40),
		},
		{
			"horizontal lock square center",
			Pt(130, 300),
			DragFlags{Lock: LockHorizontal, LockSize: Size{W: 30, H: 20}, Square: true, FromCenter: true},
			R(70, 70, 60, 60),
		},
		{
			"vertical lock square center",
			Pt(300, 125),
			DragFlags{Lock: LockVertical, LockSize: Size{W: 80, H: 25}, Square: true, FromCenter: true},
			R(60, 60, 80, 80),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DragRect(anchor, tt.current, tt.flags); got != tt.want {
				t.Fatalf("DragRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDrawLock(t *testing.T) {
	lock, sz := ResolveDrawLock(Pt(0, 0), Pt(30, -10))
	if lock != LockHorizontal || sz != (Size{W: 30, H: 10}) {
		t.Fatalf("got %v %v", lock, sz)
	}
	lock, _ = ResolveDrawLock(Pt(0, 0), Pt(10, 10))
	if lock != LockVertical {
		t.Fatalf("tie should lock vertical, got %v", lock)
	}
}

func TestApplyAxisLockIsSticky(t *testing.T) {
	start := Pt(100, 100)
	p, lock := ApplyAxisLock(Pt(130, 110), start, LockNone, true)
	if lock != LockHorizontal || p != Pt(130, 100) {
		t.Fatalf("first move: %v %v", p, lock)
	}
	p, lock = ApplyAxisLock(Pt(105, 190), start, lock, true)
	if lock != LockHorizontal || p != Pt(105, 100) {
		t.Fatalf("lock changed after vertical movement: %v %v", p, lock)
	}
	p, lock = ApplyAxisLock(Pt(105, 190), start, lock, false)
	if lock != LockNone || p != Pt(105, 190) {
		t.Fatalf("release should clear lock: %v %v", p, lock)
	}
}

func TestResizeBoundsKeepsMinimum(t *testing.T) {
	start := R(100, 100, 50, 40)
	handles := []Handle{HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW}
	pointers := []Point{Pt(0, 0), Pt(125, 120), Pt(400, 400), Pt(149, 139), Pt(101, 101)}
	for _, h := range handles {
		for _, p := range pointers {
			for _, center := range []bool{false, true} {
				got := ResizeBounds(p, h, start, center)
				if got.W < MinSize || got.H < MinSize {
					t.Fatalf("%v at %v center=%v produced %v", h, p, center, got)
				}
			}
		}
	}
}

func TestResizeBoundsFixedEdges(t *testing.T) {
	start := R(100, 100, 100, 100)
	got := ResizeBounds(Pt(260.4, 500), HandleE, start, false)
	if got != R(100, 100, 160, 100) {
		t.Fatalf("east resize = %v", got)
	}
	got = ResizeBounds(Pt(300, 20), HandleNW, start, false)
	if got != R(197, 20, 3, 180) {
		t.Fatalf("north-west resize = %v", got)
	}
	got = ResizeBounds(Pt(170, 150), HandleE, start, true)
	if got != R(130, 100, 40, 100) {
		t.Fatalf("center resize = %v", got)
	}
}

func TestHandleEdges(t *testing.T) {
	if !HandleNE.MovesTop() || !HandleNE.MovesRight() || HandleNE.MovesLeft() || HandleNE.MovesBottom() {
		t.Fatal("ne should move top and right")
	}
	if HandleN.MovesLeft() || HandleN.MovesRight() {
		t.Fatal("n should not move horizontally")
	}
	if HandleSW.String() != "sw" || HandleNone.String() != "none" {
		t.Fatal("unexpected handle names")
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := R(10, 10, 20, 20)
	for _, p := range []Point{Pt(10, 10), Pt(30, 30), Pt(20, 10)} {
		if !r.Contains(p) {
			t.Fatalf("%v should be inside %v", p, r)
		}
	}
	if r.Contains(Pt(30.5, 20)) {
		t.Fatal("point past right edge reported inside")
	}
}
