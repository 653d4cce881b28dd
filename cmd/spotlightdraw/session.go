package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/spotlightdraw/internal/clipboard"
	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
	"github.com/example/spotlightdraw/internal/prefs"
	"github.com/example/spotlightdraw/internal/render"
	"github.com/example/spotlightdraw/internal/script"
	"github.com/example/spotlightdraw/internal/theme"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	prefsTimeout  = 2 * time.Second
)

type sessionOptions struct {
	width     int
	height    int
	backdrop  image.Image
	inspector interaction.Inspector
	prefsPath string
	enabled   bool
}

// session is one drawing surface with its controller. Every host
// (window, REPL, socket and HTTP) drives it through runner.
type session struct {
	root   *root
	canvas *render.Canvas
	ctl    *interaction.Controller
	runner *script.Runner
	prefs  prefs.KV
	closer io.Closer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) openSession(opts sessionOptions) *session {
	if opts.width <= 0 {
		opts.width = defaultWidth
	}
	if opts.height <= 0 {
		opts.height = defaultHeight
	}
	s := &session{root: r, stdin: os.Stdin, stdout: r.stdout, stderr: r.stderr}
	s.prefs, s.closer = r.openPreferences(opts.prefsPath)

	canvasOpts := []render.Option{render.WithTheme(r.theme())}
	if opts.backdrop != nil {
		canvasOpts = append(canvasOpts, render.WithBackdrop(opts.backdrop))
	}
	s.canvas = render.New(opts.width, opts.height, canvasOpts...)

	ctlOpts := []interaction.Option{
		interaction.WithSurface(s.canvas),
		interaction.WithViewport(geometry.Size{W: float64(opts.width), H: float64(opts.height)}),
		interaction.WithPreferences(loadPreferences(s.prefs)),
	}
	if opts.inspector != nil {
		ctlOpts = append(ctlOpts, interaction.WithInspector(opts.inspector))
	}
	s.ctl = interaction.New(ctlOpts...)
	s.runner = script.NewRunner(s.ctl, script.WithSave(s.save), script.WithToggleHook(s.toggled))
	if opts.enabled {
		s.runner.Do(func(c *interaction.Controller) { c.Enable() })
		s.showSettings()
	}
	return s
}

func (r *root) theme() *theme.Theme {
	if r.activeTheme == nil {
		r.activeTheme = r.resolveTheme()
	}
	return r.activeTheme
}

func (s *session) close() {
	if s.closer != nil {
		closeWithLog("preferences", s.closer)
	}
}

func (s *session) toggled(on bool) {
	s.root.notifyToggle(on)
	if on {
		s.showSettings()
	}
}

func (s *session) showSettings() {
	s.runner.Do(func(c *interaction.Controller) { s.canvas.SetSettings(c.Preferences()) })
}

// withIO swaps the session streams. A nil argument keeps the current one.
func (s *session) withIO(in io.Reader, out, errW io.Writer) (restore func()) {
	prevIn, prevOut, prevErr := s.stdin, s.stdout, s.stderr
	if in != nil {
		s.stdin = in
	}
	if out != nil {
		s.stdout = out
	}
	if errW != nil {
		s.stderr = errW
	}
	return func() {
		s.stdin, s.stdout, s.stderr = prevIn, prevOut, prevErr
	}
}

func (s *session) executeLine(line string) (bool, error) {
	return s.runner.Exec(line, s.stdout)
}

func (s *session) save(path string) error {
	path = s.root.savePath(path)
	if err := s.canvas.SavePNG(path); err != nil {
		return err
	}
	s.root.notifySave(path)
	return nil
}

func (s *session) copyImage() error {
	if err := clipboard.WriteImage(s.canvas.Image()); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	s.root.notifyCopy("image")
	return nil
}

// savePath places relative paths under the configured save directory.
func (r *root) savePath(path string) string {
	if r.config == nil || r.config.SaveDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.config.SaveDir, path)
}

// openPreferences opens the SQLite store, seeding it from the config file.
// Any failure falls back to an in-memory store so drawing still works.
func (r *root) openPreferences(path string) (prefs.KV, io.Closer) {
	ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
	defer cancel()

	if path == "" && r.config != nil {
		path = r.config.PrefsDB
	}
	if path == "" {
		var err error
		path, err = prefs.DefaultPath()
		if err != nil {
			fmt.Fprintf(r.stderr, "warning: preferences: %v; using defaults\n", err)
			return prefs.NewMemory(), nil
		}
	}
	var (
		kv     prefs.KV
		closer io.Closer
	)
	db, err := prefs.OpenSQLite(ctx, path)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: preferences %s: %v; using defaults\n", path, err)
		kv = prefs.NewMemory()
	} else {
		kv, closer = db, db
	}
	if r.config != nil {
		if err := prefs.Seed(ctx, kv, r.config.Preferences.Values()); err != nil {
			fmt.Fprintf(r.stderr, "warning: config preferences: %v\n", err)
		}
	}
	return kv, closer
}

func loadPreferences(kv prefs.KV) func() prefs.Preferences {
	return func() prefs.Preferences {
		ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
		defer cancel()
		p, err := prefs.Load(ctx, kv, prefs.Defaults())
		if err != nil {
			log.Printf("warning: preferences: %v; using defaults", err)
		}
		return p
	}
}
