// FILE: lixenwraith/flags/errors.go
package flags

import (
	"errors"
	"fmt"
	"strings"
)

// Registration-time errors. These indicate a bug in the daemon's own flag
// declarations and are fatal.
var (
	ErrDuplicateName    = errors.New("duplicate flag name")
	ErrInvalidDefault   = errors.New("invalid default")
	ErrInvalidName      = errors.New("invalid flag name")
	ErrRegistryFrozen   = errors.New("registry frozen after resolution")
	ErrValidatorCycle   = errors.New("validator dependency cycle")
	ErrUnknownValidator = errors.New("unknown validator dependency")
)

// Resolution-time errors. These are collected across a whole pass and
// reported together inside a *ResolveError.
var (
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrFileFormat      = errors.New("file format error")
	ErrType            = errors.New("type error")
	ErrMissingRequired = errors.New("missing required flag")
	ErrRange           = errors.New("range error")
	ErrConsistency     = errors.New("consistency error")
)

// ErrAlreadyResolving is returned when a resolution pass starts while another
// one is still in flight.
var ErrAlreadyResolving = errors.New("resolution already in progress")

// ErrHelp and ErrVersion short-circuit resolution when the reserved --help or
// --version flags appear on the command line.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// FlagError ties a single failure to the offending flag and the source the
// rejected value came from. A missing required flag reports SourceDefault,
// the level it fell through to. Flag is empty when no flag name applies,
// as for a malformed config file line.
type FlagError struct {
	Flag   string
	Source Source
	Kind   error // one of the resolution-time sentinels
	Err    error // underlying cause, may be nil
}

// Error renders `flag "name" (source): kind: cause`.
func (e *FlagError) Error() string {
	var b strings.Builder
	if e.Flag != "" {
		fmt.Fprintf(&b, "flag %q", e.Flag)
	} else {
		b.WriteString("flags")
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " (%s)", e.Source.Describe())
	}
	if e.Kind != nil {
		b.WriteString(": ")
		b.WriteString(e.Kind.Error())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *FlagError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newFlagError(flag string, source Source, kind error, format string, args ...any) *FlagError {
	return &FlagError{Flag: flag, Source: source, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ResolveError is the multi-error report of one failed resolution pass.
type ResolveError struct {
	Errors []*FlagError
}

func (e *ResolveError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d flag errors:", len(e.Errors)))
	for _, fe := range e.Errors {
		lines = append(lines, "  "+fe.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap lets errors.Is match any of the collected errors.
func (e *ResolveError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// For returns the collected errors that name the given flag.
func (e *ResolveError) For(flag string) []*FlagError {
	var out []*FlagError
	for _, fe := range e.Errors {
		if fe.Flag == flag {
			out = append(out, fe)
		}
	}
	return out
}

// collector accumulates flag errors across one pass.
type collector struct {
	errs []*FlagError
}

func (c *collector) add(fe *FlagError) {
	if fe != nil {
		c.errs = append(c.errs, fe)
	}
}

// addErr files an arbitrary error. A *FlagError is kept as is, a
// *ResolveError or an errors.Join result is split into its parts, anything
// else is wrapped with the given flag, source and kind.
func (c *collector) addErr(flag string, source Source, kind error, err error) {
	switch e := err.(type) {
	case nil:
		return
	case *FlagError:
		if e.Flag == "" {
			e.Flag = flag
		}
		if e.Source == "" {
			e.Source = source
		}
		c.errs = append(c.errs, e)
	case *ResolveError:
		c.errs = append(c.errs, e.Errors...)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			c.addErr(flag, source, kind, inner)
		}
	default:
		c.errs = append(c.errs, &FlagError{Flag: flag, Source: source, Kind: kind, Err: err})
	}
}

func (c *collector) empty() bool { return len(c.errs) == 0 }

func (c *collector) err() error {
	if c.empty() {
		return nil
	}
	return &ResolveError{Errors: c.errs}
}
