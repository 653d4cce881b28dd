// Package prefs loads and stores the user preferences that shape new
// rectangles and snapping.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/example/spotlightdraw/internal/store"
)

// Keys as they are persisted.
const (
	KeyBorderSize   = "borderSize"
	KeyDefaultColor = "defaultColor"
	KeySnapToEdges  = "snapToEdges"
)

// Keys lists every preference key in display order.
var Keys = []string{KeyBorderSize, KeyDefaultColor, KeySnapToEdges}

// ErrUnknownKey is returned for keys outside Keys.
var ErrUnknownKey = errors.New("unknown preference")

// Preferences are read when drawing is enabled.
type Preferences struct {
	BorderWidth  float64
	DefaultColor int
	SnapEnabled  bool
}

// Defaults returns the built in preferences.
func Defaults() Preferences {
	return Preferences{BorderWidth: 1, DefaultColor: 0, SnapEnabled: true}
}

// KV is a string key value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Apply parses value and stores it into p under key.
func (p *Preferences) Apply(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyBorderSize:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s: invalid width %q", key, value)
		}
		p.BorderWidth = f
	case KeyDefaultColor:
		idx, ok := store.ColorByName(value)
		if !ok {
			return fmt.Errorf("%s: unknown color %q (want one of %s)", key, value, strings.Join(store.Palette, ", "))
		}
		p.DefaultColor = idx
	case KeySnapToEdges:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", key, value)
		}
		p.SnapEnabled = b
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return nil
}

// Value returns the persisted form of key.
func (p Preferences) Value(key string) (string, error) {
	switch key {
	case KeyBorderSize:
		return strconv.FormatFloat(p.BorderWidth, 'f', -1, 64), nil
	case KeyDefaultColor:
		return store.ColorName(p.DefaultColor), nil
	case KeySnapToEdges:
		return strconv.FormatBool(p.SnapEnabled), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Load overlays the values found in kv onto base. Values that fail to
// parse are logged and skipped. A failing store returns base with the
// error so callers can carry on with it.
func Load(ctx context.Context, kv KV, base Preferences) (Preferences, error) {
	p := base
	if kv == nil {
		return p, nil
	}
	for _, k := range Keys {
		v, ok, err := kv.Get(ctx, k)
		if err != nil {
			return base, fmt.Errorf("load %s: %w", k, err)
		}
		if !ok {
			continue
		}
		if err := p.Apply(k, v); err != nil {
			log.Printf("preferences: ignoring stored value: %v", err)
		}
	}
	return p, nil
}

// Set validates value and writes it to kv.
func Set(ctx context.Context, kv KV, key, value string) error {
	var p Preferences
	if err := p.Apply(key, value); err != nil {
		return err
	}
	normalized, _ := p.Value(key)
	if err := kv.Set(ctx, key, normalized); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Seed writes each value whose key has nothing stored yet. Invalid values
// are reported without stopping the others.
func Seed(ctx context.Context, kv KV, values map[string]string) error {
	var errs []error
	for _, k := range Keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		_, exists, err := kv.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("seed %s: %w", k, err)
		}
		if exists {
			continue
		}
		if err := Set(ctx, kv, k, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Memory is an in process KV.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = value
	return nil
}
