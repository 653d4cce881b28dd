package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestLoadOverlaysStoredValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	if err := Set(ctx, kv, KeyBorderSize, "3"); err != nil {
		t.Fatal(err)
	}
	if err := Set(ctx, kv, KeyDefaultColor, "Purple"); err != nil {
		t.Fatal(err)
	}
	p, err := Load(ctx, kv, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.BorderWidth != 3 || p.DefaultColor != 3 || !p.SnapEnabled {
		t.Fatalf("unexpected preferences %+v", p)
	}
	if v, _, _ := kv.Get(ctx, KeyDefaultColor); v != "purple" {
		t.Fatalf("color stored as %q", v)
	}
}

func TestLoadFailureKeepsBase(t *testing.T) {
	base := Defaults()
	base.BorderWidth = 2
	p, err := Load(context.Background(), failingKV{}, base)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if p != base {
		t.Fatalf("got %+v, want %+v", p, base)
	}
}

func TestLoadSkipsCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeySnapToEdges, "maybe")
	_ = kv.Set(ctx, KeyBorderSize, "4")
	p, err := Load(ctx, kv, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !p.SnapEnabled || p.BorderWidth != 4 {
		t.Fatalf("unexpected preferences %+v", p)
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	if err := Set(ctx, kv, "opacity", "1"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if err := Set(ctx, kv, KeyBorderSize, "-1"); err == nil {
		t.Fatal("negative border accepted")
	}
	if err := Set(ctx, kv, KeyDefaultColor, "teal"); err == nil {
		t.Fatal("unknown color accepted")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := db.Get(ctx, KeySnapToEdges); err != nil || ok {
		t.Fatalf("empty db returned ok=%v err=%v", ok, err)
	}
	if err := Set(ctx, db, KeySnapToEdges, "false"); err != nil {
		t.Fatal(err)
	}
	if err := Set(ctx, db, KeySnapToEdges, "0"); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	p, err := Load(ctx, db, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.SnapEnabled {
		t.Fatal("snap preference not persisted")
	}
}

func TestSeedKeepsStoredValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	if err := kv.Set(ctx, KeyBorderSize, "4"); err != nil {
		t.Fatal(err)
	}
	err := Seed(ctx, kv, map[string]string{
		KeyBorderSize:   "2",
		KeyDefaultColor: "purple",
		KeySnapToEdges:  "maybe",
	})
	if err == nil {
		t.Fatalf("expected error for invalid snap value")
	}
	p, err := Load(ctx, kv, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if p.BorderWidth != 4 {
		t.Errorf("stored border overwritten: %v", p.BorderWidth)
	}
	if p.DefaultColor != 3 {
		t.Errorf("color not seeded: %d", p.DefaultColor)
	}
	if !p.SnapEnabled {
		t.Errorf("invalid seed changed snap")
	}
}
