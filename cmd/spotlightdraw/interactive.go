package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"
)

// interactiveCLI reads script lines from stdin and applies them to a
// headless session, or forwards -e lines to a background session.
type interactiveCLI struct {
	*root
	fs *flag.FlagSet

	execs       commandList
	sessionName string
	socketDir   string
	prefsPath   string
	enable      bool
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCLI, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cli := &interactiveCLI{root: r, fs: fs}
	fs.Usage = usageFunc(cli)
	fs.Var(&cli.execs, "e", "execute a script line and exit (may be specified multiple times)")
	fs.StringVar(&cli.sessionName, "name", "", "background session to send -e lines to")
	fs.StringVar(&cli.socketDir, "dir", "", "directory that stores spotlightdraw sockets")
	fs.StringVar(&cli.prefsPath, "prefs", "", "preferences database (default from config)")
	fs.BoolVar(&cli.enable, "enable", false, "start with drawing mode on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: cli}
	}
	return cli, nil
}

func (c *interactiveCLI) Program() string {
	return c.root.Program() + " interactive"
}

func (c *interactiveCLI) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCLI) Run() error {
	if len(c.execs) > 0 && c.sessionName != "" {
		dir, err := c.root.sessionDir(c.socketDir)
		if err != nil {
			return err
		}
		return dir.run(c.sessionName, append([]string(nil), c.execs...), c.stdout, c.stderr)
	}

	sess := c.root.openSession(sessionOptions{prefsPath: c.prefsPath, enabled: c.enable})
	defer sess.close()
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := sess.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}
	return repl(sess)
}

// repl prompts for lines until exit or end of input. Errors are reported
// and the loop continues.
func repl(sess *session) error {
	if err := writeln(sess.stdout, "Enter script lines (type 'exit' to quit)"); err != nil {
		return err
	}
	scanner := bufio.NewScanner(sess.stdin)
	for {
		if _, err := fmt.Fprint(sess.stdout, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		done, err := sess.executeLine(line)
		if err != nil {
			fmt.Fprintln(sess.stderr, err)
			continue
		}
		if done {
			break
		}
	}
	return scanner.Err()
}
