package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/spotlightdraw/internal/clipboard"
)

var (
	writeClipboardImageFn = clipboard.WriteImage
	writeClipboardTextFn  = clipboard.WriteText
)

// exportCmd writes the annotated image of a running session and optionally
// places it on the clipboard.
type exportCmd struct {
	*root
	fs *flag.FlagSet

	name     string
	dir      string
	httpAddr string
	output   string
	copyPNG  bool
	copyText bool
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.name, "name", "", "background session name")
	fs.StringVar(&e.dir, "dir", "", "directory that stores spotlightdraw sockets")
	fs.StringVar(&e.httpAddr, "http", "", "export from a serve instance instead")
	fs.StringVar(&e.output, "output", "", "PNG file to write")
	fs.BoolVar(&e.copyPNG, "copy", false, "also copy the image to the clipboard")
	fs.BoolVar(&e.copyText, "copy-text", false, "copy the rectangle list to the clipboard as text")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	if e.output == "" && !e.copyPNG && !e.copyText {
		return nil, errors.New("export needs -output, -copy or -copy-text")
	}
	if e.copyPNG && e.copyText {
		return nil, errors.New("-copy and -copy-text cannot be combined; the clipboard holds one item")
	}
	if e.httpAddr != "" && e.name != "" {
		return nil, errors.New("-http and -name cannot be combined")
	}
	return e, nil
}

func (e *exportCmd) Program() string {
	return e.root.Program() + " export"
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

// exportSource is a running session as seen from another process.
type exportSource interface {
	pngBytes() ([]byte, error)
	stateText() (string, error)
}

func (e *exportCmd) Run() error {
	src, err := e.source()
	if err != nil {
		return err
	}
	if e.copyText {
		text, err := src.stateText()
		if err != nil {
			return err
		}
		if err := writeClipboardTextFn(text); err != nil {
			return fmt.Errorf("copy text: %w", err)
		}
		e.root.notifyCopy("rectangles")
		if e.output == "" {
			return nil
		}
	}
	data, err := src.pngBytes()
	if err != nil {
		return err
	}
	if e.output != "" {
		path := e.root.savePath(e.output)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		e.root.notifySave(path)
		if err := writef(e.stdout, "saved %s\n", path); err != nil {
			return err
		}
	}
	if e.copyPNG {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode exported image: %w", err)
		}
		if err := writeClipboardImageFn(img); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
		e.root.notifyCopy("image")
	}
	return nil
}

func (e *exportCmd) source() (exportSource, error) {
	if e.httpAddr != "" {
		return &httpSource{base: baseURL(e.httpAddr), client: &http.Client{Timeout: 10 * time.Second}}, nil
	}
	dir, err := e.root.sessionDir(e.dir)
	if err != nil {
		return nil, err
	}
	name, err := dir.pick(e.name)
	if err != nil {
		return nil, err
	}
	return &socketSource{dir: dir, name: name}, nil
}

func baseURL(addr string) string {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/")
}

type socketSource struct {
	dir  sessionDir
	name string
}

// pngBytes asks the session to save into a temporary file and reads it back.
func (s *socketSource) pngBytes() ([]byte, error) {
	tmp, err := os.CreateTemp("", "spotlightdraw-export-*.png")
	if err != nil {
		return nil, err
	}
	path := tmp.Name()
	closeWithLog(path, tmp)
	defer removeWithLog(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	var stderr bytes.Buffer
	if err := s.dir.run(s.name, []string{"save " + abs}, io.Discard, &stderr); err != nil {
		return nil, fmt.Errorf("export from %s: %w", s.name, err)
	}
	return os.ReadFile(abs)
}

func (s *socketSource) stateText() (string, error) {
	var out bytes.Buffer
	if err := s.dir.run(s.name, []string{"state"}, &out, io.Discard); err != nil {
		return "", fmt.Errorf("state from %s: %w", s.name, err)
	}
	return out.String(), nil
}

type httpSource struct {
	base   string
	client *http.Client
}

func (h *httpSource) get(path string) ([]byte, error) {
	resp, err := h.client.Get(h.base + path)
	if err != nil {
		return nil, err
	}
	defer closeWithLog("export response", resp.Body)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return data, nil
}

func (h *httpSource) pngBytes() ([]byte, error) {
	return h.get("/image.png")
}

func (h *httpSource) stateText() (string, error) {
	data, err := h.get("/state")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
