package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/spotlightdraw/internal/config"
	"github.com/example/spotlightdraw/internal/notify"
	"github.com/example/spotlightdraw/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	toggleAlerts bool
	saveAlerts   bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("spotlightdraw", flag.ExitOnError),
		program:  "spotlightdraw",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.toggleAlerts, "notify-toggle", cfg.Notify.Toggle, "show a desktop notification when drawing mode is switched")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. The environment is folded
	// into cfg by the loader, so an empty flag falls through to it.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.EmbeddedNames(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventToggle, r.toggleAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()
	parse, ok := commands[r.fs.Arg(0)]
	if !ok {
		return &UsageError{of: r}
	}
	cmd, err := parse(r.fs.Args()[1:], r)
	if err != nil {
		return err
	}
	return cmd.Run()
}

type commandParser func(args []string, r *root) (runnable, error)

// adapt lifts a typed parse function into a commandParser.
func adapt[C runnable](parse func([]string, *root) (C, error)) commandParser {
	return func(args []string, r *root) (runnable, error) {
		cmd, err := parse(args, r)
		if err != nil {
			return nil, err
		}
		return cmd, nil
	}
}

var commands map[string]commandParser

func init() {
	commands = map[string]commandParser{
		"annotate":    adapt(parseAnnotateCmd),
		"replay":      adapt(parseReplayCmd),
		"interactive": adapt(parseInteractiveCmd),
		"background":  adapt(parseBackgroundCmd),
		"toggle":      adapt(parseToggleCmd),
		"serve":       adapt(parseServeCmd),
		"export":      adapt(parseExportCmd),
		"prefs":       adapt(parsePrefsCmd),
		"config":      adapt(parseConfigCmd),
		"shortcuts":   adapt(parseShortcutsCmd),
		"version": func(_ []string, r *root) (runnable, error) {
			return &versionCmd{r: r}, nil
		},
	}
}

func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" && r.config != nil {
		themeName = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[themeName]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		// An implicit default is not worth a warning.
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyToggle(on bool) {
	if r != nil && r.notifier != nil {
		r.notifier.Toggle(on)
	}
}

func (r *root) notifySave(path string) {
	if r != nil && r.notifier != nil {
		r.notifier.Save(path)
	}
}

func (r *root) notifyCopy(detail string) {
	if r != nil && r.notifier != nil {
		r.notifier.Copy(detail)
	}
}
