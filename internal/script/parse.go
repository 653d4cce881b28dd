// Package script reads line oriented event scripts and plays them against
// an interaction.Controller. The same grammar is used by replay files, the
// interactive prompt, background sessions and the HTTP events endpoint.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/spotlightdraw/internal/geometry"
	"github.com/example/spotlightdraw/internal/interaction"
)

// Op is the kind of a script line.
type Op int

const (
	OpPointer Op = iota
	// OpKey presses and releases a key.
	OpKey
	OpKeyDown
	OpKeyUp
	OpToggle
	OpEnable
	OpDisable
	OpState
	OpSave
	OpClear
	OpViewport
	OpExit
)

// Command is one parsed line.
type Command struct {
	Op      Op
	Pointer interaction.PointerEvent
	Key     interaction.KeyEvent
	Path    string
	Size    geometry.Size
}

// Parse reads one line. Blank lines and lines starting with # yield nil.
func Parse(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	fields := strings.Fields(line)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "down", "move", "up":
		return parsePointer(verb, args)
	case "key", "press", "release":
		return parseKey(verb, args)
	case "toggle":
		return bare(OpToggle, verb, args)
	case "enable":
		return bare(OpEnable, verb, args)
	case "disable":
		return bare(OpDisable, verb, args)
	case "state":
		return bare(OpState, verb, args)
	case "clear":
		return bare(OpClear, verb, args)
	case "exit", "quit":
		return bare(OpExit, verb, args)
	case "save":
		if len(args) != 1 {
			return nil, fmt.Errorf("save requires a path")
		}
		return &Command{Op: OpSave, Path: args[0]}, nil
	case "viewport":
		if len(args) != 2 {
			return nil, fmt.Errorf("viewport requires width and height")
		}
		w, err := parseCoord(args[0])
		if err != nil {
			return nil, err
		}
		h, err := parseCoord(args[1])
		if err != nil {
			return nil, err
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("viewport must be positive: %vx%v", w, h)
		}
		return &Command{Op: OpViewport, Size: geometry.Size{W: w, H: h}}, nil
	}
	return nil, fmt.Errorf("unknown command %q", verb)
}

func bare(op Op, verb string, args []string) (*Command, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%s takes no arguments", verb)
	}
	return &Command{Op: op}, nil
}

func parsePointer(verb string, args []string) (*Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s requires x and y", verb)
	}
	x, err := parseCoord(args[0])
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(args[1])
	if err != nil {
		return nil, err
	}
	ev := interaction.PointerEvent{Point: geometry.Pt(x, y)}
	switch verb {
	case "down":
		ev.Kind = interaction.PointerDown
	case "move":
		ev.Kind = interaction.PointerMove
	case "up":
		ev.Kind = interaction.PointerUp
	}
	for _, tok := range args[2:] {
		if b, ok := strings.CutPrefix(tok, "button="); ok {
			if ev.Button, err = ParseButton(b); err != nil {
				return nil, err
			}
			continue
		}
		m, err := ParseMods(tok)
		if err != nil {
			return nil, err
		}
		ev.Mods |= m
	}
	return &Command{Op: OpPointer, Pointer: ev}, nil
}

func parseKey(verb string, args []string) (*Command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%s requires a key name", verb)
	}
	k, ok := interaction.KeyByName(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown key %q", args[0])
	}
	ev := interaction.KeyEvent{Key: k}
	for _, tok := range args[1:] {
		m, err := ParseMods(tok)
		if err != nil {
			return nil, err
		}
		ev.Mods |= m
	}
	cmd := &Command{Key: ev}
	switch verb {
	case "key":
		cmd.Op = OpKey
	case "press":
		cmd.Op = OpKeyDown
	case "release":
		cmd.Op = OpKeyUp
	}
	return cmd, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return v, nil
}

// ParseMods reads a + separated modifier list such as "ctrl+shift".
func ParseMods(s string) (interaction.Mods, error) {
	var m interaction.Mods
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		switch part {
		case "shift":
			m |= interaction.ModShift
		case "ctrl", "control":
			m |= interaction.ModCtrl
		case "alt", "option":
			m |= interaction.ModAlt
		case "meta", "cmd", "super":
			m |= interaction.ModMeta
		case "":
		default:
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return m, nil
}

// ParseButton reads a pointer button name.
func ParseButton(s string) (interaction.Button, error) {
	switch strings.ToLower(s) {
	case "primary", "left", "1":
		return interaction.ButtonPrimary, nil
	case "middle", "2":
		return interaction.ButtonMiddle, nil
	case "secondary", "right", "3":
		return interaction.ButtonSecondary, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// modOf is the modifier a modifier key itself contributes.
func modOf(k interaction.Key) interaction.Mods {
	switch k {
	case interaction.KeyShift:
		return interaction.ModShift
	case interaction.KeyCtrl:
		return interaction.ModCtrl
	case interaction.KeyAlt:
		return interaction.ModAlt
	case interaction.KeyMeta:
		return interaction.ModMeta
	}
	return 0
}
