package main

import (
	"context"
	"flag"
	"time"

	"github.com/example/spotlightdraw/internal/prefs"
)

type prefsCmd struct {
	*root
	fs *flag.FlagSet

	db   string
	op   string
	args []string
}

func parsePrefsCmd(args []string, r *root) (*prefsCmd, error) {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	p := &prefsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.db, "db", "", "preferences database (default from config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return nil, &UsageError{of: p}
	}
	p.op, p.args = rest[0], rest[1:]
	want := map[string]int{"list": 0, "get": 1, "set": 2}
	n, ok := want[p.op]
	if !ok || len(p.args) != n {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *prefsCmd) Program() string {
	return p.root.Program() + " prefs"
}

func (p *prefsCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func (p *prefsCmd) Run() error {
	kv, closer := p.root.openPreferences(p.db)
	if closer != nil {
		defer closeWithLog("preferences", closer)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.op == "set" {
		if err := prefs.Set(ctx, kv, p.args[0], p.args[1]); err != nil {
			return err
		}
	}
	current, err := prefs.Load(ctx, kv, prefs.Defaults())
	if err != nil {
		return err
	}
	switch p.op {
	case "get":
		v, err := current.Value(p.args[0])
		if err != nil {
			return err
		}
		return writeln(p.stdout, v)
	case "set":
		v, _ := current.Value(p.args[0])
		return writef(p.stdout, "%s = %s\n", p.args[0], v)
	}
	for _, k := range prefs.Keys {
		v, _ := current.Value(k)
		if err := writef(p.stdout, "%s = %s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
