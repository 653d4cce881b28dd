package store

import (
	"testing"

	"github.com/example/spotlightdraw/internal/geometry"
)

func TestUndoHasSingleSlot(t *testing.T) {
	var s Store
	r1 := New(geometry.R(0, 0, 10, 10), 1, 0)
	r2 := New(geometry.R(50, 50, 20, 20), 3, 2)
	s.Add(r1)
	s.Add(r2)

	s.Delete(s.IndexOf(r1.ID))
	s.Delete(s.IndexOf(r2.ID))
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}

	restored, ok := s.Undo()
	if !ok {
		t.Fatal("undo reported nothing to restore")
	}
	if restored.Bounds != r2.Bounds || restored.BorderWidth != 3 || restored.ColorIndex != 2 {
		t.Fatalf("restored %+v, want copy of %+v", restored, r2)
	}
	if restored.ID == r2.ID {
		t.Fatal("restored rectangle should get a fresh ID")
	}
	if _, ok := s.Undo(); ok {
		t.Fatal("second undo should find the slot empty")
	}
	if s.Len() != 1 {
		t.Fatalf("expected one rectangle, got %d", s.Len())
	}
}

func TestRemoveAtKeepsOrder(t *testing.T) {
	var s Store
	var ids []string
	for i := 0; i < 4; i++ {
		r := New(geometry.R(float64(i*10), 0, 5, 5), 1, 0)
		ids = append(ids, r.ID)
		s.Add(r)
	}
	s.RemoveAt(1)
	got := s.All()
	want := []string{ids[0], ids[2], ids[3]}
	for i, r := range got {
		if r.ID != want[i] {
			t.Fatalf("order broken at %d: %s want %s", i, r.ID, want[i])
		}
	}
	if s.RemoveAt(10) != nil {
		t.Fatal("out of range removal returned a rectangle")
	}
}

func TestCycleColorWraps(t *testing.T) {
	r := New(geometry.R(0, 0, 1, 1), 1, 4)
	r.CycleColor()
	if r.ColorIndex != 0 {
		t.Fatalf("color did not wrap: %d", r.ColorIndex)
	}
	if ColorName(-1) != "plain" {
		t.Fatalf("negative index name %q", ColorName(-1))
	}
}

func TestColorByName(t *testing.T) {
	for name, want := range map[string]int{"": 0, "orange": 0, "Blue": 2, " plain ": 4} {
		got, ok := ColorByName(name)
		if !ok || got != want {
			t.Errorf("ColorByName(%q) = %d %v, want %d", name, got, ok, want)
		}
	}
	if _, ok := ColorByName("magenta"); ok {
		t.Fatal("unknown color accepted")
	}
}

func TestBoundsAreWholePixels(t *testing.T) {
	r := New(geometry.R(10.7, 20.2, 30.9, 40.5), 1, 0)
	if r.Bounds != geometry.R(10, 20, 30, 40) {
		t.Fatalf("bounds not truncated: %v", r.Bounds)
	}
}

func TestOthersExcludesID(t *testing.T) {
	var s Store
	a := New(geometry.R(0, 0, 10, 10), 1, 0)
	b := New(geometry.R(20, 0, 10, 10), 1, 0)
	s.Add(a)
	s.Add(b)
	others := s.Others(a.ID)
	if len(others) != 1 || others[0] != b.Bounds {
		t.Fatalf("Others = %v", others)
	}
}
