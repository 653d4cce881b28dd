package main

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

type backgroundCmd struct {
	*root

	fs *flag.FlagSet

	op            string
	name          string
	dir           string
	prefsPath     string
	width         int
	height        int
	helpRequested bool

	runArgs []string
}

// backgroundOp lists which flags and positional arguments an operation takes.
type backgroundOp struct {
	named   bool // -name, or the first positional argument
	surface bool // -prefs, -width and -height for the served session
}

var backgroundOps = map[string]backgroundOp{
	"start":  {named: true, surface: true},
	"serve":  {named: true, surface: true},
	"stop":   {named: true},
	"attach": {named: true},
	"toggle": {named: true},
	"run":    {named: true},
	"list":   {},
	"clean":  {},
}

func parseBackgroundCmd(args []string, r *root) (*backgroundCmd, error) {
	cmd := &backgroundCmd{root: r}
	if len(args) > 0 {
		cmd.op = strings.ToLower(args[0])
		args = args[1:]
	}
	cmd.fs = flag.NewFlagSet(strings.TrimSpace("background "+cmd.op), flag.ExitOnError)
	cmd.fs.Usage = usageFunc(cmd)
	op, known := backgroundOps[cmd.op]
	if !known {
		return nil, &UsageError{of: cmd}
	}

	if op.named {
		cmd.fs.StringVar(&cmd.name, "name", "", "socket session name")
	}
	cmd.fs.StringVar(&cmd.dir, "dir", "", "directory that stores spotlightdraw sockets")
	if op.surface {
		cmd.fs.StringVar(&cmd.prefsPath, "prefs", "", "preferences database (default from config)")
		cmd.fs.IntVar(&cmd.width, "width", defaultWidth, "surface width in pixels")
		cmd.fs.IntVar(&cmd.height, "height", defaultHeight, "surface height in pixels")
	}
	cmd.fs.BoolVar(&cmd.helpRequested, "help", false, "show this help message and exit")

	if err := cmd.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: cmd}
		}
		return nil, err
	}
	if cmd.helpRequested {
		return nil, &UsageError{of: cmd}
	}

	rest := cmd.fs.Args()
	if cmd.op == "run" {
		cmd.runArgs, rest = rest, nil
		if len(cmd.runArgs) == 0 {
			return nil, errors.New("background run requires a command")
		}
	}
	if op.named && cmd.name == "" && len(rest) > 0 {
		cmd.name, rest = rest[0], rest[1:]
	}
	if cmd.dir == "" && len(rest) > 0 {
		cmd.dir, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.op == "serve" && cmd.name == "" {
		return nil, errors.New("serve requires a session name")
	}
	return cmd, nil
}

func (b *backgroundCmd) Program() string {
	return b.root.Program() + " background"
}

func (b *backgroundCmd) FlagSet() *flag.FlagSet {
	return b.fs
}

func (b *backgroundCmd) Template() string {
	return "background.txt"
}

func (b *backgroundCmd) Run() error {
	dir, err := b.root.sessionDir(b.dir)
	if err != nil {
		return err
	}
	out := b.root.stdout
	switch b.op {
	case "list":
		return dir.list(out)
	case "clean":
		return dir.clean(out)
	case "start":
		name, err := dir.spawn(b.name, b.serveArgs())
		if err != nil {
			return err
		}
		return writef(out, "started background session %s at %s\n", name, dir.path(name))
	case "stop":
		name, err := dir.pickForStop(b.name)
		if err != nil {
			return err
		}
		if err := dir.stop(name); err != nil {
			return err
		}
		return writef(out, "stop requested for %s\n", name)
	case "attach":
		name, err := dir.pick(b.name)
		if err != nil {
			return err
		}
		return dir.attach(name, os.Stdin, out, b.root.stderr)
	case "toggle":
		name, err := dir.pick(b.name)
		if err != nil {
			return err
		}
		return dir.toggle(name, out)
	case "run":
		name, words, err := dir.splitRunTarget(b.name, b.runArgs)
		if err != nil {
			return err
		}
		return dir.run(name, []string{strings.Join(words, " ")}, out, b.root.stderr)
	case "serve":
		sess := b.root.openSession(sessionOptions{
			width:     b.width,
			height:    b.height,
			prefsPath: b.prefsPath,
		})
		defer sess.close()
		return runSocketServer(dir, b.name, sess)
	default:
		return &UsageError{of: b}
	}
}

// serveArgs are the flags forwarded to the re-executed server process.
func (b *backgroundCmd) serveArgs() []string {
	args := []string{"-width", strconv.Itoa(b.width), "-height", strconv.Itoa(b.height)}
	if b.prefsPath != "" {
		args = append(args, "-prefs", b.prefsPath)
	}
	return args
}

