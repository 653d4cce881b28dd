package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Loader finds and reads the rc file.
type Loader struct {
	// Version is the build version. Development builds also look for
	// .spotlightdrawrc in the working directory.
	Version string
	// OverridePath is checked before any other location when set.
	OverridePath string
}

// NewLoader creates a Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load parses the first rc file found, or starts from defaults, and then
// applies SPOTLIGHTDRAW_* environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.Path(); path != "" {
		data, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer data.Close()
		if cfg, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	ApplyEnv(cfg, os.LookupEnv)
	return cfg, nil
}

// candidates lists rc locations in lookup order.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".spotlightdrawrc"))
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "spotlightdraw")
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "spotlightdraw.rc"))
	}
	return paths
}

// Path returns the rc file Load would read, or "" when there is none.
func (l *Loader) Path() string {
	for _, p := range l.candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// ApplyEnv overrides cfg from SPOTLIGHTDRAW_* variables. Empty strings and
// unparsable booleans are ignored.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	for name, dst := range map[string]*string{
		"SPOTLIGHTDRAW_THEME":      &cfg.Theme,
		"SPOTLIGHTDRAW_SAVE_DIR":   &cfg.SaveDir,
		"SPOTLIGHTDRAW_SOCKET_DIR": &cfg.SocketDir,
		"SPOTLIGHTDRAW_HTTP_ADDR":  &cfg.HTTPAddr,
		"SPOTLIGHTDRAW_PREFS_DB":   &cfg.PrefsDB,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	for name, dst := range map[string]*bool{
		"SPOTLIGHTDRAW_NOTIFY_TOGGLE": &cfg.Notify.Toggle,
		"SPOTLIGHTDRAW_NOTIFY_SAVE":   &cfg.Notify.Save,
		"SPOTLIGHTDRAW_NOTIFY_COPY":   &cfg.Notify.Copy,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if on, err := strconv.ParseBool(v); err == nil {
			*dst = on
		}
	}
}

// DefaultPath is where config save writes when no file exists yet.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "spotlightdraw", "config.rc"), nil
}
