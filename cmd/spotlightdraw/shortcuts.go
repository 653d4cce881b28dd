package main

import (
	"flag"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/spotlightdraw/internal/interaction"
)

type shortcutsCmd struct {
	*root
	fs    *flag.FlagSet
	plain bool
}

func parseShortcutsCmd(args []string, r *root) (*shortcutsCmd, error) {
	fs := flag.NewFlagSet("shortcuts", flag.ExitOnError)
	s := &shortcutsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.BoolVar(&s.plain, "plain", false, "print without colors")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *shortcutsCmd) Program() string {
	return s.root.Program() + " shortcuts"
}

func (s *shortcutsCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *shortcutsCmd) Run() error {
	_, err := s.stdout.Write([]byte(renderShortcuts(interaction.Shortcuts, s.plain)))
	return err
}

// renderShortcuts lays the groups out as a two column table.
func renderShortcuts(groups []interaction.ShortcutGroup, plain bool) string {
	keyW := 0
	for _, g := range groups {
		for _, sc := range g.Shortcuts {
			keyW = max(keyW, lipgloss.Width(sc.Keys))
		}
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	key := lipgloss.NewStyle().Width(keyW + 3).PaddingLeft(2).Foreground(lipgloss.Color("81"))
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	if plain {
		heading, desc = lipgloss.NewStyle(), lipgloss.NewStyle()
		key = lipgloss.NewStyle().Width(keyW + 3).PaddingLeft(2)
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(heading.Render(g.Title))
		b.WriteByte('\n')
		for _, sc := range g.Shortcuts {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, key.Render(sc.Keys), desc.Render(sc.Description)))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
