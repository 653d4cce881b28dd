package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/store"
)

// ErrNoSave is returned by a save line when the runner has no save hook.
var ErrNoSave = errors.New("save is not available in this session")

// Option configures a Runner.
type Option func(*Runner)

// WithSave sets the hook a save line calls.
func WithSave(fn func(path string) error) Option { return func(r *Runner) { r.save = fn } }

// WithToggleHook sets a function called with the new state whenever drawing
// mode changes, whether by a toggle line or a key such as Escape.
func WithToggleHook(fn func(enabled bool)) Option { return func(r *Runner) { r.onToggle = fn } }

// Runner plays script lines against a controller. It serializes every
// access so hosts may call it from several goroutines.
type Runner struct {
	mu       sync.Mutex
	ctl      *interaction.Controller
	save     func(path string) error
	onToggle func(bool)
}

// NewRunner wraps ctl.
func NewRunner(ctl *interaction.Controller, opts ...Option) *Runner {
	r := &Runner{ctl: ctl}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Do runs fn with exclusive access to the controller.
func (r *Runner) Do(fn func(*interaction.Controller)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.ctl)
}

// Toggle flips drawing mode and reports the new state.
func (r *Runner) Toggle() bool {
	r.mu.Lock()
	on := r.ctl.Toggle()
	r.mu.Unlock()
	r.toggled(on)
	return on
}

func (r *Runner) toggled(on bool) {
	if r.onToggle != nil {
		r.onToggle(on)
	}
}

// Exec parses and runs one line, writing any output to out. done reports
// an exit line.
func (r *Runner) Exec(line string, out io.Writer) (done bool, err error) {
	cmd, err := Parse(line)
	if err != nil || cmd == nil {
		return false, err
	}
	return r.Apply(cmd, out)
}

// Apply runs a parsed command.
func (r *Runner) Apply(cmd *Command, out io.Writer) (bool, error) {
	switch cmd.Op {
	case OpExit:
		return true, nil
	case OpToggle:
		r.Toggle()
		return false, nil
	case OpEnable, OpDisable:
		r.mu.Lock()
		if cmd.Op == OpEnable {
			r.ctl.Enable()
		} else {
			r.ctl.Disable()
		}
		on := r.ctl.Enabled()
		r.mu.Unlock()
		r.toggled(on)
		return false, nil
	case OpSave:
		if r.save == nil {
			return false, ErrNoSave
		}
		if err := r.save(cmd.Path); err != nil {
			return false, fmt.Errorf("save %s: %w", cmd.Path, err)
		}
		_, err := fmt.Fprintf(out, "saved %s\n", cmd.Path)
		return false, err
	}

	r.mu.Lock()
	before := r.ctl.Enabled()
	err := r.apply(cmd, out)
	on := r.ctl.Enabled()
	r.mu.Unlock()
	if on != before {
		r.toggled(on)
	}
	return false, err
}

// HandleKey delivers ev to the controller. A key that turns drawing mode
// off, such as Escape from idle, reports through the toggle hook.
func (r *Runner) HandleKey(ev interaction.KeyEvent) {
	r.mu.Lock()
	before := r.ctl.Enabled()
	r.ctl.HandleKey(ev)
	on := r.ctl.Enabled()
	r.mu.Unlock()
	if on != before {
		r.toggled(on)
	}
}

func (r *Runner) apply(cmd *Command, out io.Writer) error {
	switch cmd.Op {
	case OpPointer:
		r.ctl.HandlePointer(cmd.Pointer)
	case OpKey:
		down := cmd.Key
		down.Down = true
		down.Mods |= modOf(down.Key)
		r.ctl.HandleKey(down)
		up := cmd.Key
		up.Mods &^= modOf(up.Key)
		r.ctl.HandleKey(up)
	case OpKeyDown:
		ev := cmd.Key
		ev.Down = true
		ev.Mods |= modOf(ev.Key)
		r.ctl.HandleKey(ev)
	case OpKeyUp:
		ev := cmd.Key
		ev.Mods &^= modOf(ev.Key)
		r.ctl.HandleKey(ev)
	case OpClear:
		r.ctl.Clear()
	case OpViewport:
		r.ctl.SetViewport(cmd.Size)
	case OpState:
		return writeState(out, r.ctl)
	}
	return nil
}

// Run executes every line of in. Errors carry the line number.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := r.Exec(scanner.Text(), out)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// State is a snapshot of the session.
type State struct {
	Enabled    bool        `json:"enabled"`
	Mode       string      `json:"mode"`
	Cursor     string      `json:"cursor"`
	Help       bool        `json:"help"`
	Guides     int         `json:"guides"`
	Rectangles []RectState `json:"rectangles"`
}

// RectState describes one placed rectangle.
type RectState struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Border float64 `json:"border"`
	Color  string  `json:"color"`
}

// Snapshot captures the controller state.
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.ctl)
}

func snapshot(c *interaction.Controller) State {
	st := State{
		Enabled:    c.Enabled(),
		Mode:       c.Mode().String(),
		Cursor:     c.Cursor().String(),
		Help:       c.HelpVisible(),
		Guides:     len(c.Guides()),
		Rectangles: []RectState{},
	}
	for _, rect := range c.Store().All() {
		st.Rectangles = append(st.Rectangles, rectState(rect))
	}
	return st
}

func rectState(r *store.Rectangle) RectState {
	return RectState{
		ID:     r.ID,
		X:      r.Bounds.X,
		Y:      r.Bounds.Y,
		W:      r.Bounds.W,
		H:      r.Bounds.H,
		Border: r.BorderWidth,
		Color:  store.ColorName(r.ColorIndex),
	}
}

func writeState(out io.Writer, c *interaction.Controller) error {
	st := snapshot(c)
	if _, err := fmt.Fprintf(out, "mode %s enabled %t rectangles %d\n", st.Mode, st.Enabled, len(st.Rectangles)); err != nil {
		return err
	}
	for _, r := range st.Rectangles {
		if _, err := fmt.Fprintf(out, "  %g %g %g %g %s\n", r.X, r.Y, r.W, r.H, r.Color); err != nil {
			return err
		}
	}
	return nil
}
