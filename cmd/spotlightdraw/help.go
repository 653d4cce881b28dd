package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

// helpTemplates parses the embedded usage templates on first use.
var helpTemplates = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{"flags": flagList}).ParseFS(helpFS, "templates/*.txt"))
})

// flagInfo is one row of a flag listing.
type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

func flagList(fs *flag.FlagSet) []flagInfo {
	var rows []flagInfo
	if fs != nil {
		fs.VisitAll(func(f *flag.Flag) { rows = append(rows, flagInfo{f.Name, f.DefValue, f.Usage}) })
	}
	return rows
}

// HelpData is implemented by every command that renders a usage page.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError carries a command whose usage page should be shown instead
// of running it.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	var buf bytes.Buffer
	if err := helpTemplates().ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("render %s: %v", e.of.Template(), err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc renders the command's help template for flag.FlagSet.Usage.
func usageFunc(of HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: of}).Error())
	}
}

func (r *root) Template() string {
	return "root.txt"
}

func (a *annotateCmd) Template() string {
	return "annotate.txt"
}

func (p *replayCmd) Template() string {
	return "replay.txt"
}

func (i *interactiveCLI) Template() string {
	return "interactive.txt"
}

func (t *toggleCmd) Template() string {
	return "toggle.txt"
}

func (s *serveCmd) Template() string {
	return "serve.txt"
}

func (e *exportCmd) Template() string {
	return "export.txt"
}

func (p *prefsCmd) Template() string {
	return "prefs.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (s *shortcutsCmd) Template() string {
	return "shortcuts.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}
