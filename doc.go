// File: lixenwraith/flags/doc.go

// Package flags provides typed startup options for long-running daemons,
// resolved from multiple sources: command-line arguments, environment
// variables, a config file (line format, TOML or YAML) and registered
// defaults, under a fixed precedence.
//
// Features:
//   - Generic typed flags bound to fields of the caller's struct
//   - Coercers for bool, string, int, uint, float, durations, byte sizes,
//     optional values, lists, ordered maps, paths and percentages
//   - All errors of a pass collected and reported together
//   - Semantic validators with declared ordering dependencies
//   - Atomic commit: bound fields change only when the whole pass succeeds
//   - Help screen and reference documentation from the registry
//   - Source tracking to see where values originated
//   - File watching with debounce
//
// Quick Start:
//
//	type Config struct {
//	    Interval time.Duration
//	    Verbose  bool
//	}
//
//	var cfg Config
//	reg := flags.NewRegistry()
//	flags.MustRegister(reg, flags.Flag[time.Duration]{
//	    Name: "interval", Help: "Poll interval",
//	    Target: &cfg.Interval, Coercer: flags.Duration{}, Default: flags.Ptr(time.Second),
//	})
//	reg.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
//
//	res, err := flags.NewResolver(reg).WithEnvPrefix("MYAPP_").WithFileFlag("config").Resolve()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--interval=2secs)
//  2. Environment variables (MYAPP_INTERVAL=2secs)
//  3. Config file (interval 2secs)
//  4. Registered defaults
//
// Durations are written as a number and a unit: ns, us, ms, secs, mins, hrs
// or days. Byte sizes use powers of 1024: B, KB, MB, GB, TB.
//
// Thread Safety:
//
// Registration happens on a single goroutine before the first Resolve, which
// freezes the registry. Commits hold the registry's write lock; wrap reads of
// the bound struct in Registry.Read to observe a consistent snapshot.
//
// Error Handling:
//
// Resolve returns a *ResolveError holding one *FlagError per problem. Each
// unwraps to a kind sentinel (ErrType, ErrRange, ...), so errors.Is works on
// the whole report.
package flags
