package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"
)

var errSocketClosed = errors.New("socket closed by server")

// sessionClient is one connection to a session socket.
type sessionClient struct {
	conn    net.Conn
	replies *bufio.Scanner
}

// dialSession connects and consumes the READY greeting.
func dialSession(path string, timeout time.Duration) (*sessionClient, error) {
	conn, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return nil, err
	}
	c := &sessionClient{conn: conn, replies: bufio.NewScanner(conn)}
	greeting, err := c.next()
	if err == nil && greeting != msgReady {
		err = fmt.Errorf("unexpected greeting: %s", greeting)
	}
	if err != nil {
		closeWithLog("socket client", conn)
		return nil, err
	}
	return c, nil
}

func (c *sessionClient) Close() error { return c.conn.Close() }

func (c *sessionClient) send(line string) error { return writeln(c.conn, line) }

// next reads one reply line. A clean EOF is errSocketClosed.
func (c *sessionClient) next() (string, error) {
	if c.replies.Scan() {
		return c.replies.Text(), nil
	}
	if err := c.replies.Err(); err != nil {
		return "", err
	}
	return "", errSocketClosed
}

// exec runs one script line remotely and relays its output.
func (c *sessionClient) exec(line string, stdout, stderr io.Writer) error {
	if err := c.send(msgExec + line); err != nil {
		return err
	}
	for {
		reply, err := c.next()
		if err != nil {
			return err
		}
		switch {
		case strings.HasPrefix(reply, msgOut):
			err = writeln(stdout, reply[len(msgOut):])
		case strings.HasPrefix(reply, msgErr):
			err = writeln(stderr, reply[len(msgErr):])
		case reply == msgDoneQuit:
			return errSocketClosed
		case strings.HasPrefix(reply, msgDoneErr):
			return errors.New(strings.ReplaceAll(reply[len(msgDoneErr):], `\n`, "\n"))
		case strings.HasPrefix(reply, msgDoneOK):
			return nil
		default:
			err = writeln(stdout, reply)
		}
		if err != nil {
			return err
		}
	}
}

func ping(path string) error {
	c, err := dialSession(path, time.Second)
	if err != nil {
		return err
	}
	defer closeWithLog("ping socket", c)
	if err := c.conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
		return err
	}
	if err := c.send(msgPing); err != nil {
		return err
	}
	reply, err := c.next()
	if errors.Is(err, errSocketClosed) {
		return errors.New("no pong received")
	}
	if err != nil {
		return err
	}
	if reply != msgPong {
		return fmt.Errorf("unexpected response: %s", reply)
	}
	return nil
}

func (d sessionDir) toggle(name string, out io.Writer) error {
	c, err := dialSession(d.path(name), time.Second)
	if err != nil {
		return err
	}
	defer closeWithLog("socket client", c)
	if err := c.send(msgToggle); err != nil {
		return err
	}
	reply, err := c.next()
	if err != nil {
		return err
	}
	state, ok := strings.CutPrefix(reply, msgDoneOK+" ")
	if !ok {
		return fmt.Errorf("unexpected response: %s", reply)
	}
	return writef(out, "drawing %s\n", state)
}

// run executes lines in order and stops quietly when one of them ends the
// session.
func (d sessionDir) run(name string, lines []string, stdout, stderr io.Writer) error {
	c, err := dialSession(d.path(name), 5*time.Second)
	if err != nil {
		return err
	}
	defer closeWithLog("socket client", c)
	for _, line := range lines {
		err := c.exec(line, stdout, stderr)
		if errors.Is(err, errSocketClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// attach forwards lines from in until it ends. A failing line is reported
// and the session stays attached.
func (d sessionDir) attach(name string, in io.Reader, stdout, stderr io.Writer) error {
	c, err := dialSession(d.path(name), 5*time.Second)
	if err != nil {
		return err
	}
	defer closeWithLog("socket client", c)
	input := bufio.NewScanner(in)
	for {
		if _, err := io.WriteString(stdout, "> "); err != nil {
			return err
		}
		if !input.Scan() {
			return input.Err()
		}
		err := c.exec(input.Text(), stdout, stderr)
		if errors.Is(err, errSocketClosed) {
			return nil
		}
		if err != nil {
			if werr := writeln(stderr, err.Error()); werr != nil {
				return werr
			}
		}
	}
}

// stop asks the session to shut down. A socket nobody answers on is
// removed instead.
func (d sessionDir) stop(name string) error {
	path := d.path(name)
	c, err := dialSession(path, time.Second)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr == nil || errors.Is(rmErr, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer closeWithLog("socket client", c)
	if err := c.send(msgShutdown); err != nil {
		return err
	}
	for {
		reply, err := c.next()
		if errors.Is(err, errSocketClosed) || strings.HasPrefix(reply, "DONE ") {
			break
		}
		if err != nil {
			return err
		}
	}
	removeWithLog(path)
	return nil
}
