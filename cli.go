// FILE: lixenwraith/flags/cli.go
package flags

import (
	"log/slog"
	"strings"
)

// CommandLine is the outcome of reading the argument vector.
type CommandLine struct {
	Values     map[string]RawValue
	Positional []string // non-flag tokens and everything after "--"
	Help       bool     // --help was given
	Version    bool     // --version was given
}

// ReadCLI scans args (without the program name) against the registry.
// Accepted spellings: --name=value, --name value, --name (boolean true) and
// --no-name (boolean false). When strict is false unknown flags are ignored,
// otherwise each one is reported as ErrUnknownFlag. The returned error, if
// any, is a *ResolveError; the CommandLine is still filled as far as possible.
func ReadCLI(reg *Registry, args []string, strict bool) (CommandLine, error) {
	var errs collector
	cl := readCLI(reg, args, strict, slog.Default(), &errs)
	return cl, errs.err()
}

func readCLI(reg *Registry, args []string, strict bool, log *slog.Logger, errs *collector) CommandLine {
	cl := CommandLine{Values: make(map[string]RawValue)}

	i := 0
	for i < len(args) {
		arg := args[i]
		i++

		if arg == "--" {
			// Everything after the separator is positional
			cl.Positional = append(cl.Positional, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			cl.Positional = append(cl.Positional, arg)
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			unknownFlag(arg, strict, log, errs)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")

		switch name {
		case HelpFlag:
			cl.Help = true
			continue
		case VersionFlag:
			cl.Version = true
			continue
		}

		if e, ok := reg.entries[name]; ok {
			switch {
			case hasValue:
			case e.desc.Boolean:
				value = "true"
			case i < len(args) && !strings.HasPrefix(args[i], "--"):
				value = args[i]
				i++
			default:
				errs.add(newFlagError(name, SourceCLI, ErrType, "missing value for --%s", name))
				continue
			}
			cl.Values[name] = RawValue{Source: SourceCLI, Text: value}
			continue
		}

		if base, negated := strings.CutPrefix(name, "no-"); negated {
			if e, ok := reg.entries[base]; ok {
				switch {
				case !e.desc.Boolean:
					errs.add(newFlagError(base, SourceCLI, ErrType, "--no-%s is only valid for boolean flags", base))
				case hasValue:
					errs.add(newFlagError(base, SourceCLI, ErrType, "--no-%s does not take a value", base))
				default:
					cl.Values[base] = RawValue{Source: SourceCLI, Text: "false"}
				}
				continue
			}
		}

		unknownFlag(arg, strict, log, errs)
	}

	return cl
}

func unknownFlag(arg string, strict bool, log *slog.Logger, errs *collector) {
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if strict {
		errs.add(newFlagError(name, SourceCLI, ErrUnknownFlag, "unrecognized argument %q", arg))
		return
	}
	log.Warn("Ignoring unknown command-line flag", "arg", arg)
}
