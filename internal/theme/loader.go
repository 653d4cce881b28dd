package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const themeExt = ".theme"

// Loader resolves theme names to themes.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader searches ~/.config/spotlightdraw/themes and then
// /usr/share/spotlightdraw/themes.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "spotlightdraw", "themes"),
		SystemDir: "/usr/share/spotlightdraw/themes",
	}
}

// Load finds a theme by name or path. An existing file path wins, then
// the embedded themes, then ConfigDir and SystemDir. An empty name is the
// default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFrom(os.DirFS(filepath.Dir(name)), filepath.Base(name), name)
	}

	file := strings.TrimSuffix(name, themeExt) + themeExt
	sources := []struct {
		fsys fs.FS
		dir  string
	}{
		{EmbeddedThemes, "defaults"},
		{dirFS(l.ConfigDir), "."},
		{dirFS(l.SystemDir), "."},
	}
	for _, src := range sources {
		if src.fsys == nil {
			continue
		}
		t, err := parseFrom(src.fsys, path.Join(src.dir, file), name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, err
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func dirFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

func parseFrom(fsys fs.FS, path, label string) (*Theme, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", label, err)
	}
	return t, nil
}
