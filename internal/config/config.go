package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/spotlightdraw/internal/theme"
)

// DefaultHTTPAddr is where serve listens unless configured otherwise.
const DefaultHTTPAddr = "127.0.0.1:7878"

// Notify holds notification settings.
type Notify struct {
	Toggle bool
	Save   bool
	Copy   bool
}

// Preferences seeds the preference store. Empty fields leave the stored
// value or the built-in default in place.
type Preferences struct {
	BorderWidth  string
	DefaultColor string
	Snap         string
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	SocketDir   string
	HTTPAddr    string
	PrefsDB     string
	Notify      Notify
	Preferences Preferences
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		HTTPAddr: DefaultHTTPAddr,
		Themes:   make(map[string]*theme.Theme),
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := [][2]string{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"socket_dir", c.SocketDir},
		{"http_addr", c.HTTPAddr},
		{"prefs_db", c.PrefsDB},
	}
	for _, kv := range root {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "toggle = %v\n", c.Notify.Toggle)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	p := c.Preferences
	if p != (Preferences{}) {
		sb.WriteString("[preferences]\n")
		if p.BorderWidth != "" {
			fmt.Fprintf(&sb, "border_width = %s\n", p.BorderWidth)
		}
		if p.DefaultColor != "" {
			fmt.Fprintf(&sb, "default_color = %s\n", p.DefaultColor)
		}
		if p.Snap != "" {
			fmt.Fprintf(&sb, "snap = %s\n", p.Snap)
		}
		sb.WriteString("\n")
	}

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Values returns the configured preferences keyed by their persisted
// names. Unset fields are omitted.
func (p Preferences) Values() map[string]string {
	out := map[string]string{}
	if p.BorderWidth != "" {
		out["borderSize"] = p.BorderWidth
	}
	if p.DefaultColor != "" {
		out["defaultColor"] = p.DefaultColor
	}
	if p.Snap != "" {
		out["snapToEdges"] = p.Snap
	}
	return out
}
