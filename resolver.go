// FILE: lixenwraith/flags/resolver.go
package flags

import (
	"fmt"
	"log/slog"
	"os"
)

// Resolver merges command line, environment and config file into the bound
// configuration. Precedence is fixed: CLI > environment > file > default.
type Resolver struct {
	reg       *Registry
	args      []string
	envPrefix string
	lookup    LookupFunc
	file      string
	fileFlag  string
	strict    bool
	logger    *slog.Logger
}

// NewResolver creates a resolver reading os.Args[1:] and the process
// environment in strict mode.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{
		reg:    reg,
		args:   os.Args[1:],
		lookup: os.LookupEnv,
		strict: true,
		logger: slog.Default(),
	}
}

// WithArgs sets the command-line arguments, without the program name
func (rs *Resolver) WithArgs(args []string) *Resolver {
	rs.args = args
	return rs
}

// WithEnvPrefix sets the environment variable prefix
func (rs *Resolver) WithEnvPrefix(prefix string) *Resolver {
	rs.envPrefix = prefix
	return rs
}

// WithLookup replaces os.LookupEnv, mostly for tests
func (rs *Resolver) WithLookup(fn LookupFunc) *Resolver {
	if fn != nil {
		rs.lookup = fn
	}
	return rs
}

// WithFile reads the config file at path. It takes priority over WithFileFlag.
func (rs *Resolver) WithFile(path string) *Resolver {
	rs.file = path
	return rs
}

// WithFileFlag names a registered flag whose value (from CLI, environment or
// its default) is the config file location.
func (rs *Resolver) WithFileFlag(name string) *Resolver {
	rs.fileFlag = name
	return rs
}

// WithStrict controls whether unknown flags are errors (true, the default)
// or ignored with a warning.
func (rs *Resolver) WithStrict(strict bool) *Resolver {
	rs.strict = strict
	return rs
}

// WithLogger sets the structured logger
func (rs *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	if logger != nil {
		rs.logger = logger
	}
	return rs
}

// Result describes a completed resolution pass.
type Result struct {
	Values     *Values
	Positional []string
	Help       bool
	Version    bool
	FilePath   string // config file that was read, "" if none
}

// Source returns where name's final value came from.
func (r *Result) Source(name string) Source {
	src, _ := r.Values.Source(name)
	return src
}

// Resolve runs one resolution pass. Every flag is attempted even after
// failures and all errors are returned together as a *ResolveError. Bound
// targets are written in one step, and only when no error was found.
//
// --help and --version short-circuit with ErrHelp or ErrVersion before any
// coercion. A second Resolve on the same registry while one is running fails
// with ErrAlreadyResolving.
func (rs *Resolver) Resolve() (*Result, error) {
	reg := rs.reg
	if !reg.resolving.CompareAndSwap(false, true) {
		return nil, ErrAlreadyResolving
	}
	defer reg.resolving.Store(false)
	reg.frozen.Store(true)

	validators, err := reg.validatorOrder()
	if err != nil {
		return nil, err
	}

	var errs collector

	cl := readCLI(reg, rs.args, rs.strict, rs.logger, &errs)
	result := &Result{Positional: cl.Positional, Help: cl.Help, Version: cl.Version}
	switch {
	case cl.Help:
		return result, ErrHelp
	case cl.Version:
		return result, ErrVersion
	}

	sets := map[Source]rawSet{
		SourceCLI: cl.Values,
		SourceEnv: ReadEnv(reg, rs.envPrefix, rs.lookup),
	}

	if path, origin, ok := rs.configFile(sets); ok {
		result.FilePath = NormalizePath(path)
		fileValues, err := readFile(reg, path, rs.strict, rs.logger, &errs)
		if err != nil {
			errs.add(&FlagError{Flag: rs.fileFlag, Source: origin, Kind: ErrFileFormat, Err: err})
		}
		sets[SourceFile] = fileValues
	}

	values := newValues(len(reg.order))
	incomplete := false
	for _, name := range reg.order {
		e := reg.entries[name]

		raw, found := pick(name, sets)
		if !found {
			switch def, ok := e.bind.defaultValue(); {
			case ok:
				values.put(name, resolved{value: def, source: SourceDefault, text: e.desc.DefaultRaw})
			case e.desc.Required:
				incomplete = true
				errs.add(newFlagError(name, SourceDefault, ErrMissingRequired, "no value from command line, environment or file"))
			default:
				values.put(name, resolved{value: e.bind.zero()})
			}
			continue
		}

		v, err := e.bind.coerce(raw.Text)
		if err != nil {
			incomplete = true
			errs.add(&FlagError{Flag: name, Source: raw.Source, Kind: ErrType, Err: fmt.Errorf("invalid value %q: %w", raw.Text, err)})
			continue
		}
		values.put(name, resolved{value: v, source: raw.Source, text: raw.Text})
		rs.logger.Debug("Resolved flag", "flag", name, "source", raw.Source)
	}

	// Semantic rules need every flag coerced; unknown flags and bad file
	// lines do not hold them back
	if !incomplete {
		runValidators(validators, values, &errs)
	}
	if !errs.empty() {
		return nil, errs.err()
	}

	reg.commit(values)
	result.Values = values
	rs.logger.Debug("Configuration resolved", "flags", len(values.order), "file", result.FilePath)
	return result, nil
}

// configFile determines the config file location and the source it came
// from.
func (rs *Resolver) configFile(sets map[Source]rawSet) (string, Source, bool) {
	if rs.file != "" {
		return rs.file, SourceFile, true
	}
	if rs.fileFlag == "" {
		return "", "", false
	}
	if raw, ok := pick(rs.fileFlag, sets); ok && raw.Text != "" {
		return raw.Text, raw.Source, true
	}
	if e, ok := rs.reg.entries[rs.fileFlag]; ok && e.desc.HasDefault && e.desc.DefaultRaw != "" {
		return e.desc.DefaultRaw, SourceDefault, true
	}
	return "", "", false
}

// commit writes every value into its bound target under the write lock.
func (r *Registry) commit(values *Values) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range values.order {
		r.entries[name].bind.commit(values.items[name].value)
	}
}
