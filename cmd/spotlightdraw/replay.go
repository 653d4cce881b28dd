package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// replayCmd plays an event script against a headless surface and saves
// the result.
type replayCmd struct {
	*root
	fs *flag.FlagSet

	script     string
	output     string
	background string
	prefsPath  string
	width      int
	height     int
	enable     bool
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	p := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.script, "script", "-", "event script to play, - for stdin")
	fs.StringVar(&p.output, "output", "", "save the final image here")
	fs.StringVar(&p.background, "background", "", "image drawn under the annotations")
	fs.StringVar(&p.prefsPath, "prefs", "", "preferences database (default from config)")
	fs.IntVar(&p.width, "width", defaultWidth, "surface width when no background is given")
	fs.IntVar(&p.height, "height", defaultHeight, "surface height when no background is given")
	fs.BoolVar(&p.enable, "enable", true, "start with drawing mode on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	if p.width <= 0 || p.height <= 0 {
		return nil, errors.New("width and height must be positive")
	}
	return p, nil
}

func (p *replayCmd) Program() string {
	return p.root.Program() + " replay"
}

func (p *replayCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *replayCmd) Run() error {
	opts := sessionOptions{
		width:     p.width,
		height:    p.height,
		prefsPath: p.prefsPath,
		enabled:   p.enable,
	}
	if p.background != "" {
		img, err := decodeImageFile(p.background)
		if err != nil {
			return err
		}
		opts.backdrop = img
		opts.width, opts.height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	sess := p.root.openSession(opts)
	defer sess.close()

	in, closeIn, err := openScript(p.script)
	if err != nil {
		return err
	}
	defer closeIn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := sess.runner.Run(ctx, in, p.stdout); err != nil {
		return fmt.Errorf("replay %s: %w", p.script, err)
	}
	if p.output == "" {
		return nil
	}
	if err := sess.save(p.output); err != nil {
		return err
	}
	return writef(p.stdout, "saved %s\n", p.root.savePath(p.output))
}

func openScript(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { closeWithLog(path, f) }, nil
}

