package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/spotlightdraw/internal/interaction"
)

// toggleCmd flips drawing mode in a running session, either a background
// socket session or a serve instance.
type toggleCmd struct {
	*root
	fs *flag.FlagSet

	name     string
	dir      string
	httpAddr string
	client   *http.Client
}

func parseToggleCmd(args []string, r *root) (*toggleCmd, error) {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	t := &toggleCmd{root: r, fs: fs, client: &http.Client{Timeout: 5 * time.Second}}
	fs.Usage = usageFunc(t)
	fs.StringVar(&t.name, "name", "", "background session name")
	fs.StringVar(&t.dir, "dir", "", "directory that stores spotlightdraw sockets")
	fs.StringVar(&t.httpAddr, "http", "", "address of a serve instance to toggle instead")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: t}
	}
	if t.httpAddr != "" && t.name != "" {
		return nil, errors.New("-http and -name cannot be combined")
	}
	return t, nil
}

func (t *toggleCmd) Program() string {
	return t.root.Program() + " toggle"
}

func (t *toggleCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func (t *toggleCmd) Run() error {
	if t.httpAddr != "" {
		return t.toggleHTTP()
	}
	dir, err := t.root.sessionDir(t.dir)
	if err != nil {
		return err
	}
	name, err := dir.pick(t.name)
	if err != nil {
		return err
	}
	return dir.toggle(name, t.stdout)
}

func (t *toggleCmd) toggleHTTP() error {
	url := t.httpAddr
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	body, err := json.Marshal(map[string]string{"type": interaction.ToggleMessage})
	if err != nil {
		return err
	}
	resp, err := t.client.Post(strings.TrimSuffix(url, "/")+"/toggle", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("toggle %s: %w", t.httpAddr, err)
	}
	defer closeWithLog("toggle response", resp.Body)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("toggle %s: %s: %s", t.httpAddr, resp.Status, bytes.TrimSpace(data))
	}
	var reply struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("toggle %s: %w", t.httpAddr, err)
	}
	return writef(t.stdout, "drawing %s\n", onOff(reply.Enabled))
}
