package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	socketSuffix   = ".sock"
	socketDirEnv   = "SPOTLIGHTDRAW_SOCKET_DIR"
	startupTimeout = 3 * time.Second
)

// sessionDir holds one unix socket per background session, named
// NAME.sock.
type sessionDir string

// sessionEntry is a socket file found in a sessionDir. dead is set when
// the socket did not answer a ping.
type sessionEntry struct {
	name string
	file string
	dead error
}

// sessionDir picks the socket directory: explicit flag, then
// SPOTLIGHTDRAW_SOCKET_DIR, then socket_dir from the config file, then the
// user runtime directory.
func (r *root) sessionDir(explicit string) (sessionDir, error) {
	if explicit == "" && os.Getenv(socketDirEnv) == "" && r.config != nil {
		explicit = r.config.SocketDir
	}
	return defaultSessionDir(explicit)
}

func defaultSessionDir(explicit string) (sessionDir, error) {
	for _, dir := range []string{explicit, os.Getenv(socketDirEnv)} {
		if dir != "" {
			return sessionDir(dir), nil
		}
	}
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" && runtime.GOOS != "windows" {
		return sessionDir(filepath.Join(xdg, "spotlightdraw")), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return sessionDir(filepath.Join(home, ".spotlightdraw", "sockets")), nil
}

func (d sessionDir) path(name string) string {
	return filepath.Join(string(d), strings.TrimSuffix(name, socketSuffix)+socketSuffix)
}

func (d sessionDir) ensure() error {
	return os.MkdirAll(string(d), 0o700)
}

// scan pings every socket in the directory, sorted by name. A missing
// directory has no sessions.
func (d sessionDir) scan() ([]sessionEntry, error) {
	files, err := os.ReadDir(string(d))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []sessionEntry
	for _, f := range files {
		isSocket := f.Type()&os.ModeSocket != 0 || strings.HasSuffix(f.Name(), socketSuffix)
		if f.IsDir() || !isSocket {
			continue
		}
		e := sessionEntry{name: strings.TrimSuffix(f.Name(), socketSuffix), file: f.Name()}
		if err := ping(filepath.Join(string(d), f.Name())); err != nil {
			e.dead = describeDialError(err)
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b sessionEntry) int { return strings.Compare(a.name, b.name) })
	return entries, nil
}

func live(entries []sessionEntry) []string {
	var names []string
	for _, e := range entries {
		if e.dead == nil {
			names = append(names, e.name)
		}
	}
	return names
}

func entryNames(entries []sessionEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

func (d sessionDir) list(out io.Writer) error {
	entries, err := d.scan()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return writeln(out, "no sessions found")
	}
	var b strings.Builder
	b.WriteString("sessions:\n")
	for _, e := range entries {
		if e.dead != nil {
			fmt.Fprintf(&b, "  %s (dead: %v)\n", e.name, e.dead)
			continue
		}
		fmt.Fprintf(&b, "  %s\n", e.name)
	}
	_, err = io.WriteString(out, b.String())
	return err
}

// clean removes the socket files of sessions that no longer answer.
func (d sessionDir) clean(out io.Writer) error {
	entries, err := d.scan()
	if err != nil {
		return err
	}
	var removed []string
	for _, e := range entries {
		if e.dead == nil {
			continue
		}
		err := os.Remove(filepath.Join(string(d), e.file))
		switch {
		case err == nil:
			removed = append(removed, e.name)
		case errors.Is(err, os.ErrNotExist):
		default:
			if werr := writef(out, "failed to remove %s: %v\n", e.name, err); werr != nil {
				return werr
			}
		}
	}
	if len(removed) == 0 {
		return writeln(out, "no dead sessions found")
	}
	return writef(out, "removed %d dead session(s): %s\n", len(removed), strings.Join(removed, ", "))
}

// nextName is one more than the largest numeric session name in use.
func (d sessionDir) nextName() (string, error) {
	files, err := os.ReadDir(string(d))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	highest := 0
	for _, f := range files {
		n, err := strconv.Atoi(strings.TrimSuffix(f.Name(), socketSuffix))
		if err == nil && !f.IsDir() {
			highest = max(highest, n)
		}
	}
	return strconv.Itoa(highest + 1), nil
}

// pick returns preferred if it is live, or the only live session.
func (d sessionDir) pick(preferred string) (string, error) {
	entries, err := d.scan()
	if err != nil {
		return "", err
	}
	return chooseLive(live(entries), preferred)
}

func chooseLive(alive []string, preferred string) (string, error) {
	switch {
	case preferred != "":
		if slices.Contains(alive, preferred) {
			return preferred, nil
		}
		return "", fmt.Errorf("session %s is not running", preferred)
	case len(alive) == 1:
		return alive[0], nil
	case len(alive) == 0:
		return "", errors.New("no background sessions running")
	}
	return "", fmt.Errorf("multiple background sessions running; specify a session name (%s)", strings.Join(alive, ", "))
}

// pickForStop accepts dead sessions too so their sockets can be removed.
func (d sessionDir) pickForStop(preferred string) (string, error) {
	if preferred != "" {
		return preferred, nil
	}
	entries, err := d.scan()
	if err != nil {
		return "", err
	}
	if len(entries) == 1 {
		return entries[0].name, nil
	}
	if len(entries) == 0 {
		return "", errors.New("no background sessions found")
	}
	if alive := live(entries); len(alive) == 1 {
		return alive[0], nil
	}
	return "", fmt.Errorf("multiple background sessions found; specify a session name (%s)", strings.Join(entryNames(entries), ", "))
}

// splitRunTarget separates the session name from the script words of
// "background run". A first word naming a live session selects it.
func (d sessionDir) splitRunTarget(preferred string, words []string) (string, []string, error) {
	entries, err := d.scan()
	if err != nil {
		return "", nil, err
	}
	alive := live(entries)
	if preferred == "" && len(words) > 0 && slices.Contains(alive, words[0]) {
		preferred, words = words[0], words[1:]
	}
	if len(words) == 0 {
		return "", nil, errors.New("background run requires a command")
	}
	name, err := chooseLive(alive, preferred)
	if err != nil {
		return "", nil, err
	}
	return name, words, nil
}

// spawn re-executes this binary as "background serve" and waits for the
// new socket to answer.
func (d sessionDir) spawn(name string, extra []string) (string, error) {
	if err := d.ensure(); err != nil {
		return "", err
	}
	if name == "" {
		var err error
		if name, err = d.nextName(); err != nil {
			return "", err
		}
	}
	entries, err := d.scan()
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.name != name {
			continue
		}
		if e.dead == nil {
			return "", fmt.Errorf("session %s already running", name)
		}
		if err := os.Remove(filepath.Join(string(d), e.file)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	cmd := exec.Command(exe, append([]string{"background", "serve", "-name", name, "-dir", string(d)}, extra...)...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Start(); err != nil {
		return "", err
	}
	if err := cmd.Process.Release(); err != nil {
		return "", err
	}

	lastErr := errors.New("unknown startup failure")
	for deadline := time.Now().Add(startupTimeout); time.Now().Before(deadline); time.Sleep(50 * time.Millisecond) {
		if err := ping(d.path(name)); err != nil {
			lastErr = describeDialError(err)
			continue
		}
		return name, nil
	}
	return "", fmt.Errorf("session %s did not become ready: %v", name, lastErr)
}

func describeDialError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return errors.New("missing socket file")
	case errors.Is(err, os.ErrPermission):
		return errors.New("permission denied")
	}
	return err
}
