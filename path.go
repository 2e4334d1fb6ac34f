// FILE: lixenwraith/flags/path.go
package flags

import "strings"

// FileScheme is the URI prefix stripped from path values.
const FileScheme = "file://"

// Path accepts a filesystem path or a file:// URI and stores the local path.
type Path struct{}

func (Path) Type() string { return "path" }

func (Path) Parse(text string) (string, error) { return NormalizePath(text), nil }

func (Path) Format(v string) string { return v }

func (Path) Validate(string) error { return nil }

// NormalizePath strips a leading file:// scheme. Other values pass through.
func NormalizePath(text string) string {
	if rest, ok := strings.CutPrefix(text, FileScheme); ok {
		return rest
	}
	return text
}
