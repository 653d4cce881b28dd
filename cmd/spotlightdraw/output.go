package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// commandList collects a repeatable string flag.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, ";") }

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, msg string) error {
	_, err := io.WriteString(w, msg+"\n")
	return err
}

func closeWithLog(what string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("close %s: %v", what, err)
	}
}

func removeWithLog(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("remove %s: %v", path, err)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
