package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/example/spotlightdraw/internal/capture"
	"github.com/example/spotlightdraw/internal/clipboard"
	"github.com/example/spotlightdraw/internal/window"
)

var (
	captureScreenshotFn = capture.Screenshot
	listMonitorsFn      = capture.ListMonitors
	loadWindowTreeFn    = capture.LoadWindowTree
	readClipboardFn     = clipboard.ReadImage
)

// annotateCmd opens the drawing window over a screenshot or an image file.
type annotateCmd struct {
	*root
	fs *flag.FlagSet

	file          string
	output        string
	display       string
	prefsPath     string
	includeCursor bool
	inspect       bool
	fromClipboard bool
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.file, "file", "", "annotate this image instead of capturing the screen")
	fs.StringVar(&a.output, "output", "", "save the annotated image here on exit")
	fs.StringVar(&a.display, "display", "", "monitor to capture: primary, an index or a name")
	fs.StringVar(&a.prefsPath, "prefs", "", "preferences database (default from config)")
	fs.BoolVar(&a.includeCursor, "cursor", false, "include the mouse pointer in the capture")
	fs.BoolVar(&a.inspect, "inspect", true, "load the window tree for element inspection")
	fs.BoolVar(&a.fromClipboard, "from-clipboard", false, "annotate the image on the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: a}
	}
	if a.fromClipboard && a.file != "" {
		return nil, errors.New("-from-clipboard cannot be combined with -file")
	}
	return a, nil
}

func (a *annotateCmd) Program() string {
	return a.root.Program() + " annotate"
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *annotateCmd) Run() error {
	img, origin, err := a.backdrop()
	if err != nil {
		return err
	}
	opts := sessionOptions{
		width:     img.Bounds().Dx(),
		height:    img.Bounds().Dy(),
		backdrop:  img,
		prefsPath: a.prefsPath,
		enabled:   true,
	}
	if a.inspect && a.file == "" && !a.fromClipboard {
		if tree, err := loadWindowTreeFn(origin); err != nil {
			fmt.Fprintf(a.stderr, "warning: window inspection unavailable: %v\n", err)
		} else {
			opts.inspector = tree
		}
	}
	sess := a.root.openSession(opts)
	defer sess.close()

	var saveErr error
	app := window.New(sess.runner, sess.canvas,
		window.WithTitle("spotlightdraw"),
		window.WithSave(func() error { return sess.save(a.savePath()) }),
		window.WithCopy(sess.copyImage),
		window.WithOnClose(func() {
			if a.output != "" {
				saveErr = sess.save(a.output)
			}
		}),
	)
	app.Run()
	return saveErr
}

// backdrop loads the image to annotate and reports its position on the
// virtual screen.
func (a *annotateCmd) backdrop() (image.Image, image.Point, error) {
	switch {
	case a.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, image.Point{}, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, image.Point{}, nil
	case a.file != "":
		img, err := decodeImageFile(a.file)
		return img, image.Point{}, err
	}
	img, err := captureScreenshotFn(capture.Options{Display: a.display, IncludeCursor: a.includeCursor})
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("failed to capture screen: %w", err)
	}
	origin := image.Point{}
	if a.display != "" {
		if monitors, err := listMonitorsFn(); err == nil {
			if m, err := capture.FindMonitor(monitors, a.display); err == nil {
				origin = m.Rect.Min
			}
		}
	}
	return img, origin, nil
}

func (a *annotateCmd) savePath() string {
	if a.output != "" {
		return a.output
	}
	return fmt.Sprintf("spotlightdraw-%s.png", time.Now().Format("20060102-150405"))
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(path, f)
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
