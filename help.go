// FILE: lixenwraith/flags/help.go
package flags

import (
	"fmt"
	"io"
	"strings"
)

// HelpEntry is one row of help output.
type HelpEntry struct {
	Name     string
	Type     string
	Default  string // rendered default, "" when there is none
	Help     string
	Required bool
	Boolean  bool
}

// RenderHelp lists every registered flag in registration order. It depends
// only on the registry and can run before any resolution.
func (r *Registry) RenderHelp() []HelpEntry {
	entries := make([]HelpEntry, 0, len(r.order))
	for _, name := range r.order {
		d := r.entries[name].desc
		entries = append(entries, HelpEntry{
			Name:     d.Name,
			Type:     d.Type,
			Default:  d.DefaultRaw,
			Help:     d.Help,
			Required: d.Required,
			Boolean:  d.Boolean,
		})
	}
	return entries
}

// Spelling returns how the flag is written on the command line.
func (h HelpEntry) Spelling() string {
	if h.Boolean {
		return "--[no-]" + h.Name
	}
	return "--" + h.Name + "=VALUE"
}

// WriteUsage renders the --help screen.
func (r *Registry) WriteUsage(w io.Writer, program string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [...]\n\n", program)

	entries := r.RenderHelp()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Spelling()))
	}
	width = max(width, len("--version"))

	for _, e := range entries {
		lines := strings.Split(strings.TrimRight(e.Help, "\n"), "\n")
		switch {
		case e.Required:
			lines[len(lines)-1] += " (required)"
		case e.Default != "":
			lines[len(lines)-1] += fmt.Sprintf(" (default: %s)", e.Default)
		}
		for i, line := range lines {
			left := ""
			if i == 0 {
				left = e.Spelling()
			}
			fmt.Fprintf(&b, "  %-*s  %s\n", width, left, strings.TrimSpace(line))
		}
	}
	fmt.Fprintf(&b, "  %-*s  %s\n", width, "--help", "Prints this help message")
	fmt.Fprintf(&b, "  %-*s  %s\n", width, "--version", "Show version and exit")

	_, err := io.WriteString(w, b.String())
	return err
}
