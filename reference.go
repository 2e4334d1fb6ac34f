// FILE: lixenwraith/flags/reference.go
package flags

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Reference document formats accepted by WriteReference.
const (
	ReferenceMarkdown = "markdown"
	ReferenceYAML     = "yaml"
	ReferenceTOML     = "toml"
)

// ReferenceFormats lists the supported formats.
var ReferenceFormats = []string{ReferenceMarkdown, ReferenceYAML, ReferenceTOML}

// referenceEntry is the YAML shape of one flag.
type referenceEntry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Default  string `yaml:"default,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Env      string `yaml:"env"`
	Help     string `yaml:"help"`
}

// WriteReference generates reference documentation for every flag. The toml
// format doubles as a sample config file holding all defaults.
func (r *Registry) WriteReference(w io.Writer, format, envPrefix string) error {
	switch format {
	case ReferenceMarkdown:
		return r.writeMarkdown(w, envPrefix)
	case ReferenceYAML:
		return r.writeYAML(w, envPrefix)
	case ReferenceTOML:
		return r.writeTOML(w)
	default:
		return fmt.Errorf("unknown reference format %q (want one of %s)", format, strings.Join(ReferenceFormats, ", "))
	}
}

func (r *Registry) writeMarkdown(w io.Writer, envPrefix string) error {
	var b strings.Builder
	b.WriteString("| Flag | Type | Default | Environment | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, e := range r.RenderHelp() {
		def := "`" + e.Default + "`"
		switch {
		case e.Required:
			def = "required"
		case e.Default == "":
			def = ""
		}
		help := strings.Join(strings.Fields(e.Help), " ")
		fmt.Fprintf(&b, "| `%s` | %s | %s | `%s` | %s |\n",
			e.Spelling(), e.Type, def, EnvName(envPrefix, e.Name), strings.ReplaceAll(help, "|", `\|`))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Registry) writeYAML(w io.Writer, envPrefix string) error {
	help := r.RenderHelp()
	doc := make([]referenceEntry, 0, len(help))
	for _, e := range help {
		doc = append(doc, referenceEntry{
			Name:     e.Name,
			Type:     e.Type,
			Default:  e.Default,
			Required: e.Required,
			Env:      EnvName(envPrefix, e.Name),
			Help:     strings.TrimSpace(e.Help),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML reference: %w", err)
	}
	return enc.Close()
}

// writeTOML emits one commented key per flag, in registration order. Flags
// without a default are commented out.
func (r *Registry) writeTOML(w io.Writer) error {
	var b bytes.Buffer
	for i, e := range r.RenderHelp() {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, line := range strings.Split(strings.TrimSpace(e.Help), "\n") {
			b.WriteString("# " + strings.TrimSpace(line) + "\n")
		}

		var kv bytes.Buffer
		if err := toml.NewEncoder(&kv).Encode(map[string]string{e.Name: e.Default}); err != nil {
			return fmt.Errorf("failed to encode %q: %w", e.Name, err)
		}
		if e.Default == "" {
			b.WriteString("# ")
		}
		b.Write(kv.Bytes())
	}
	_, err := w.Write(b.Bytes())
	return err
}
