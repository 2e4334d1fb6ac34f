// FILE: lixenwraith/flags/source.go
package flags

// Source identifies where a raw flag value came from.
type Source string

const (
	// SourceDefault represents the registered default value
	SourceDefault Source = "default"
	// SourceFile represents values read from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values read from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values read from command-line arguments
	SourceCLI Source = "cli"
)

// precedence is fixed: the first source present wins.
var precedence = [...]Source{SourceCLI, SourceEnv, SourceFile, SourceDefault}

// Describe returns the human-readable source name used in error reports.
func (s Source) Describe() string {
	switch s {
	case SourceCLI:
		return "command line"
	case SourceEnv:
		return "environment"
	case SourceFile:
		return "file"
	case SourceDefault:
		return "default"
	default:
		return string(s)
	}
}

// RawValue is one uncoerced candidate for a flag.
type RawValue struct {
	Source Source
	Text   string
}

// rawSet holds the candidates a single reader produced, keyed by flag name.
type rawSet map[string]RawValue

// pick returns the highest-precedence candidate for name.
func pick(name string, sets map[Source]rawSet) (RawValue, bool) {
	for _, src := range precedence {
		if set, ok := sets[src]; ok {
			if raw, found := set[name]; found {
				return raw, true
			}
		}
	}
	return RawValue{}, false
}
