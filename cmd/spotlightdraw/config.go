package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/spotlightdraw/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Program() string {
	return c.root.Program() + " config"
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) != 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		_, err := fmt.Fprint(c.stdout, c.root.config.String())
		return err
	case "save":
		return c.runSave()
	case "path":
		return writeln(c.stdout, c.configPath())
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// configPath is the file the loader read, or where save would create one.
func (c *configCmd) configPath() string {
	if path := config.NewLoader(version, configPathOverride).Path(); path != "" {
		return path
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "config.rc"
	}
	return path
}

func (c *configCmd) runSave() error {
	path := c.configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer closeWithLog(path, f)

	if _, err := f.WriteString(c.root.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
