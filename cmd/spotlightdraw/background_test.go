package main

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// shortTempDir keeps socket paths under the unix path length limit.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "sd")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestSocketSessionRoundTrip(t *testing.T) {
	r, _, _ := newTestRoot(t)
	sess := r.openSession(sessionOptions{width: 200, height: 100})
	defer sess.close()

	dir := sessionDir(shortTempDir(t))
	srv, err := listenSocket(dir, "t", sess)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	served := make(chan error, 1)
	go func() { served <- srv.serve() }()

	if err := ping(dir.path("t")); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var out, errOut bytes.Buffer
	lines := []string{"enable", "down 10 10", "move 40 40", "up 40 40", "state"}
	if err := dir.run("t", lines, &out, &errOut); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if !strings.Contains(out.String(), "mode idle enabled true rectangles 1") {
		t.Fatalf("output %q", out.String())
	}
	if !strings.Contains(out.String(), "  10 10 30 30 orange") {
		t.Fatalf("rectangle line missing from %q", out.String())
	}

	err = dir.run("t", []string{"teleport 1 2"}, &out, &errOut)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	out.Reset()
	if err := dir.toggle("t", &out); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out.String() != "drawing off\n" {
		t.Fatalf("toggle output %q", out.String())
	}
	if sess.runner.Snapshot().Enabled {
		t.Fatalf("session still enabled")
	}

	out.Reset()
	if err := dir.list(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "sessions:\n  t\n" {
		t.Fatalf("list %q", out.String())
	}

	if err := dir.stop("t"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
	if _, err := os.Stat(dir.path("t")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("socket file left behind: %v", err)
	}
}

func TestExitClosesConnection(t *testing.T) {
	r, _, _ := newTestRoot(t)
	sess := r.openSession(sessionOptions{width: 50, height: 50})
	defer sess.close()
	dir := sessionDir(shortTempDir(t))
	srv, err := listenSocket(dir, "x", sess)
	if err != nil {
		t.Fatal(err)
	}
	go srv.serve()
	defer srv.shutdown()

	var out bytes.Buffer
	if err := dir.run("x", []string{"exit", "state"}, &out, &out); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("lines after exit ran: %q", out.String())
	}
}

func TestCleanSessionDir(t *testing.T) {
	dir := sessionDir(shortTempDir(t))
	if err := os.WriteFile(dir.path("dead"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := dir.clean(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "removed 1 dead session(s): dead\n" {
		t.Fatalf("clean output %q", out.String())
	}
	out.Reset()
	if err := dir.clean(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "no dead sessions found\n" {
		t.Fatalf("second clean %q", out.String())
	}
}

func TestNextSessionName(t *testing.T) {
	dir := t.TempDir()
	if name, err := sessionDir(filepath.Join(dir, "missing")).nextName(); err != nil || name != "1" {
		t.Fatalf("missing dir: %q %v", name, err)
	}
	for _, f := range []string{"1.sock", "7.sock", "work.sock"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if name, err := sessionDir(dir).nextName(); err != nil || name != "8" {
		t.Fatalf("got %q %v, want 8", name, err)
	}
}

func TestDefaultSessionDir(t *testing.T) {
	t.Setenv("SPOTLIGHTDRAW_SOCKET_DIR", "/env/sockets")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1")
	if got, _ := defaultSessionDir("/explicit"); got != "/explicit" {
		t.Errorf("explicit: %q", got)
	}
	if got, _ := defaultSessionDir(""); got != "/env/sockets" {
		t.Errorf("env: %q", got)
	}
	t.Setenv("SPOTLIGHTDRAW_SOCKET_DIR", "")
	r := &root{}
	if got, _ := r.sessionDir(""); got != sessionDir(filepath.Join("/run/user/1", "spotlightdraw")) {
		t.Errorf("runtime dir: %q", got)
	}
}

func TestTaggedWriterTagsEachLine(t *testing.T) {
	var buf bytes.Buffer
	w := &taggedWriter{w: &buf, tag: "OUT "}
	n, err := w.Write([]byte("a\nb\n"))
	if err != nil || n != 4 {
		t.Fatalf("write %d %v", n, err)
	}
	if buf.String() != "OUT a\nOUT b\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPickWithNoSessions(t *testing.T) {
	_, err := sessionDir(t.TempDir()).pick("")
	if err == nil || !strings.Contains(err.Error(), "no background sessions running") {
		t.Fatalf("got %v", err)
	}
}

func TestParseBackgroundCmd(t *testing.T) {
	r := &root{program: "spotlightdraw"}
	cmd, err := parseBackgroundCmd([]string{"start", "-width", "640", "work"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.name != "work" || cmd.width != 640 {
		t.Fatalf("parsed %+v", cmd)
	}
	if got := strings.Join(cmd.serveArgs(), " "); got != "-width 640 -height 800" {
		t.Fatalf("serve args %q", got)
	}

	var uerr *UsageError
	if _, err := parseBackgroundCmd([]string{"bounce"}, r); !errors.As(err, &uerr) {
		t.Fatalf("unknown op: %v", err)
	}
	if _, err := parseBackgroundCmd([]string{"serve"}, r); err == nil {
		t.Fatalf("serve without a name succeeded")
	}
	if _, err := parseBackgroundCmd([]string{"run"}, r); err == nil {
		t.Fatalf("run without a command succeeded")
	}
}

func TestExportFromSocket(t *testing.T) {
	r, stdout, _ := newTestRoot(t)
	sess := r.openSession(sessionOptions{width: 64, height: 48, enabled: true})
	defer sess.close()
	dir := sessionDir(shortTempDir(t))
	srv, err := listenSocket(dir, "e", sess)
	if err != nil {
		t.Fatal(err)
	}
	go srv.serve()
	defer srv.shutdown()

	var copied image.Image
	var copiedText string
	origImg, origText := writeClipboardImageFn, writeClipboardTextFn
	t.Cleanup(func() { writeClipboardImageFn, writeClipboardTextFn = origImg, origText })
	writeClipboardImageFn = func(img image.Image) error { copied = img; return nil }
	writeClipboardTextFn = func(s string) error { copiedText = s; return nil }

	cmd, err := parseExportCmd([]string{"-name", "e", "-dir", string(dir), "-output", "out.png", "-copy"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("export: %v", err)
	}
	want := filepath.Join(r.config.SaveDir, "out.png")
	if stdout.String() != "saved "+want+"\n" {
		t.Fatalf("output %q", stdout.String())
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("export file: %v", err)
	}
	if copied == nil || copied.Bounds().Dx() != 64 {
		t.Fatalf("clipboard image %v", copied)
	}

	cmd, _ = parseExportCmd([]string{"-name", "e", "-dir", string(dir), "-copy-text"}, r)
	if err := cmd.Run(); err != nil {
		t.Fatalf("export text: %v", err)
	}
	if !strings.HasPrefix(copiedText, "mode idle enabled true rectangles 0") {
		t.Fatalf("clipboard text %q", copiedText)
	}
}
