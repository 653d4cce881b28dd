package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/spotlightdraw/internal/theme"
)

// sectionFunc applies one key/value pair inside a section.
type sectionFunc func(key, value string) error

// Parse reads an rc file. Blank lines and lines starting with # or // are
// skipped. Keys are separated from values by = or, failing that, :.
// Unknown sections and keys are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	section := ""
	apply := cfg.sectionHandler(section)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.TrimSpace(line[1 : len(line)-1])
			apply = cfg.sectionHandler(section)
			continue
		}

		key, value, ok := splitAssignment(line)
		if !ok || apply == nil {
			continue
		}
		if err := apply(key, value); err != nil {
			where := "root section"
			if section != "" {
				where = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d in %s: %w", lineNo, where, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sectionHandler returns the setter for name, creating a theme entry for
// [theme.NAME] sections. It returns nil for sections nobody reads.
func (c *Config) sectionHandler(name string) sectionFunc {
	if themeName, ok := strings.CutPrefix(name, "theme."); ok {
		t := theme.Default()
		t.Name = themeName
		c.Themes[themeName] = t
		return func(key, value string) error { return theme.Set(t, key, value) }
	}
	switch name {
	case "":
		return c.setRoot
	case "notify":
		return c.Notify.set
	case "preferences":
		return c.Preferences.set
	}
	return nil
}

func splitAssignment(line string) (key, value string, ok bool) {
	sep := "="
	if !strings.Contains(line, sep) {
		sep = ":"
	}
	key, value, ok = strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), unquote(strings.TrimSpace(value)), true
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

func (c *Config) setRoot(key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		c.Theme = value
	case "save_dir":
		c.SaveDir = value
	case "socket_dir":
		c.SocketDir = value
	case "http_addr":
		c.HTTPAddr = value
	case "prefs_db":
		c.PrefsDB = value
	}
	return nil
}

func (n *Notify) set(key, value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: want a boolean: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "toggle":
		n.Toggle = on
	case "save":
		n.Save = on
	case "copy":
		n.Copy = on
	}
	return nil
}

// set stores raw preference text. Values are validated when seeded into
// the preference store.
func (p *Preferences) set(key, value string) error {
	switch strings.ToLower(key) {
	case "border_width", "bordersize":
		p.BorderWidth = value
	case "default_color", "defaultcolor":
		p.DefaultColor = value
	case "snap", "snaptoedges":
		p.Snap = value
	}
	return nil
}
