// FILE: lixenwraith/flags/master/flags.go
package master

import (
	"errors"
	"time"

	"github.com/lixenwraith/flags"
)

// EnvPrefix is prepended to upper-cased flag names to form the environment
// variables the master reads ("MESOS_WORK_DIR").
const EnvPrefix = "MESOS_"

// ConfigFlag names the flag that locates the master's config file.
const ConfigFlag = "config"

// Flags is the startup configuration of the cluster master.
type Flags struct {
	// Logging
	Quiet      bool
	LogDir     flags.Option[string]
	LogBufSecs uint64

	Hostname                  flags.Option[string]
	RootSubmissions           bool
	WorkDir                   string
	Registry                  string
	RegistryStrict            bool
	RecoverySlaveRemovalLimit string
	WebUIDir                  string
	Whitelist                 string
	UserSorter                string
	FrameworkSorter           string
	AllocationInterval        time.Duration
	Cluster                   flags.Option[string]
	Roles                     flags.Option[[]string]
	Weights                   flags.Option[*flags.OrderedMap[float64]]
	Authenticate              bool
	Credentials               flags.Option[string]

	Config flags.Option[string]
}

// Register declares every master flag and its semantic rules on reg, binding
// them to the fields of f.
func (f *Flags) Register(reg *flags.Registry) error {
	steps := []func() error{
		// Logging flags come first, as in every daemon of the cluster
		func() error { return reg.BoolVar(&f.Quiet, "quiet", false, "Disable logging to stderr") },
		func() error {
			return register(reg, flags.Flag[flags.Option[string]]{
				Name:    "log_dir",
				Help:    "Directory path to put log files (no default, nothing\nis written to disk if not specified)",
				Target:  &f.LogDir,
				Coercer: flags.OptionalOf[string](flags.Path{}),
			})
		},
		func() error {
			return register(reg, flags.Flag[uint64]{
				Name:    "logbufsecs",
				Help:    "How many seconds to buffer log messages for",
				Target:  &f.LogBufSecs,
				Coercer: flags.Uint{},
				Default: flags.Ptr[uint64](0),
			})
		},

		func() error {
			return register(reg, flags.Flag[flags.Option[string]]{
				Name: "hostname",
				Help: "The hostname the master should advertise in ZooKeeper.\n" +
					"If left unset, system hostname will be used (recommended).",
				Target:  &f.Hostname,
				Coercer: flags.OptionalOf[string](flags.String{}),
			})
		},
		func() error {
			return reg.BoolVar(&f.RootSubmissions, "root_submissions", true, "Can root submit frameworks?")
		},
		func() error {
			return reg.StringVar(&f.WorkDir, "work_dir", DefaultWorkDir, "Where to store master specific files")
		},
		func() error {
			return reg.StringVar(&f.Registry, "registry", DefaultRegistry,
				"Persistence strategy for the registry;\navailable options are 'in_memory'.")
		},
		func() error {
			return reg.BoolVar(&f.RegistryStrict, "registry_strict", false,
				"Whether the Master will take actions based on the persistent\n"+
					"information stored in the Registry. Setting this to false means\n"+
					"that the Registrar will never reject the admission, readmission,\n"+
					"or removal of a slave. Consequently, 'false' can be used to\n"+
					"bootstrap the persistent state on a running cluster.")
		},
		func() error {
			return register(reg, flags.Flag[string]{
				Name: "recovery_slave_removal_limit",
				Help: "For failovers, limit on the percentage of slaves that can be removed\n" +
					"from the registry *and* shutdown after the re-registration timeout\n" +
					"elapses. If the limit is exceeded, the master will fail over rather\n" +
					"than remove the slaves.\n" +
					"This can be used to provide safety guarantees for production\n" +
					"environments. Production environments may expect that across Master\n" +
					"failovers, at most a certain percentage of slaves will fail\n" +
					"permanently (e.g. due to rack-level failures).\n" +
					"Setting this limit would ensure that a human needs to get\n" +
					"involved should an unexpected widespread failure of slaves occur\n" +
					"in the cluster.\n" +
					"Values: [0%-100%]",
				Target:  &f.RecoverySlaveRemovalLimit,
				Coercer: flags.Percent{},
				Default: flags.Ptr(flags.FormatPercent(RecoverySlaveRemovalPercentLimit)),
			})
		},
		func() error {
			return register(reg, flags.Flag[string]{
				Name:    "webui_dir",
				Help:    "Location of the webui files/assets",
				Target:  &f.WebUIDir,
				Coercer: flags.Path{},
				Default: flags.Ptr(DefaultWebUIDir),
			})
		},
		func() error {
			return register(reg, flags.Flag[string]{
				Name: "whitelist",
				Help: "Path to a file with a list of slaves\n" +
					"(one per line) to advertise offers for.\n" +
					"Path could be of the form 'file:///path/to/file' or '/path/to/file'",
				Target:  &f.Whitelist,
				Coercer: flags.Path{},
				Default: flags.Ptr(WhitelistAll),
			})
		},
		func() error {
			return reg.StringVar(&f.UserSorter, "user_sorter", DefaultSorter,
				"Policy to use for allocating resources\nbetween users. May be one of:\n  dominant_resource_fairness (drf)")
		},
		func() error {
			return reg.StringVar(&f.FrameworkSorter, "framework_sorter", DefaultSorter,
				"Policy to use for allocating resources\nbetween a given user's frameworks. Options\nare the same as for user_sorter")
		},
		func() error {
			return reg.DurationVar(&f.AllocationInterval, "allocation_interval", DefaultAllocationInterval,
				"Amount of time to wait between performing\n(batch) allocations (e.g., 500ms, 1sec, etc)")
		},
		func() error {
			return register(reg, flags.Flag[flags.Option[string]]{
				Name:    "cluster",
				Help:    "Human readable name for the cluster,\ndisplayed in the webui",
				Target:  &f.Cluster,
				Coercer: flags.OptionalOf[string](flags.String{}),
			})
		},
		func() error {
			return register(reg, flags.Flag[flags.Option[[]string]]{
				Name: "roles",
				Help: "A comma separated list of the allocation\n" +
					"roles that frameworks in this cluster may\n" +
					"belong to.",
				Target:  &f.Roles,
				Coercer: flags.Optional[[]string]{Inner: flags.List{}, AllowEmpty: true},
			})
		},
		func() error {
			return register(reg, flags.Flag[flags.Option[*flags.OrderedMap[float64]]]{
				Name: "weights",
				Help: "A comma separated list of role/weight pairs\n" +
					"of the form 'role=weight,role=weight'. Weights\n" +
					"are used to indicate forms of priority.",
				Target:  &f.Weights,
				Coercer: flags.Optional[*flags.OrderedMap[float64]]{
					Inner:      flags.MapOf[float64](flags.Float{}),
					AllowEmpty: true,
				},
			})
		},
		func() error {
			return reg.BoolVar(&f.Authenticate, "authenticate", false,
				"If authenticate is 'true' only authenticated frameworks are allowed\n"+
					"to register. If 'false' unauthenticated frameworks are also\n"+
					"allowed to register.")
		},
		func() error {
			return register(reg, flags.Flag[flags.Option[string]]{
				Name: "credentials",
				Help: "Path to a file with a list of credentials.\n" +
					"Each line contains a 'principal' and 'secret' separated by whitespace.\n" +
					"Path could be of the form 'file:///path/to/file' or '/path/to/file'",
				Target:  &f.Credentials,
				Coercer: flags.OptionalOf[string](flags.Path{}),
			})
		},
		func() error {
			return register(reg, flags.Flag[flags.Option[string]]{
				Name:    ConfigFlag,
				Help:    "Path to a config file holding flag values.\nFlags given on the command line or in the environment take precedence.",
				Target:  &f.Config,
				Coercer: flags.OptionalOf[string](flags.Path{}),
			})
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	for _, rule := range Rules() {
		if err := reg.AddValidator(rule); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the master flag set bound to f.
// It panics on a declaration error, which is a bug in this package.
func NewRegistry(f *Flags) *flags.Registry {
	reg := flags.NewRegistry()
	if err := f.Register(reg); err != nil {
		panic("master flags: " + err.Error())
	}
	return reg
}

// NewResolver returns a resolver reading the master's environment prefix
// and config file flag.
func NewResolver(reg *flags.Registry) *flags.Resolver {
	return flags.NewResolver(reg).WithEnvPrefix(EnvPrefix).WithFileFlag(ConfigFlag)
}

// RecoverySlaveRemovalFraction returns --recovery_slave_removal_limit as a
// fraction in [0, 1]. Only meaningful after a successful resolution.
func (f *Flags) RecoverySlaveRemovalFraction() float64 {
	fraction, err := flags.ParsePercent(f.RecoverySlaveRemovalLimit)
	if err != nil {
		return RecoverySlaveRemovalPercentLimit
	}
	return fraction
}

// CredentialsFile returns the --credentials path to load at startup, ""
// when authentication is off and none was given. Authentication without a
// credentials file is a startup error.
func (f *Flags) CredentialsFile() (string, error) {
	path, ok := f.Credentials.Get()
	switch {
	case !f.Authenticate:
		return path, nil
	case !ok:
		return "", errors.New("--authenticate requires --credentials")
	}
	return path, nil
}

// WhitelistEnabled reports whether --whitelist names a file.
func (f *Flags) WhitelistEnabled() bool {
	return f.Whitelist != "" && f.Whitelist != WhitelistAll
}

// Weight returns the configured weight of role, 1.0 when none is set.
func (f *Flags) Weight(role string) float64 {
	if weights, ok := f.Weights.Get(); ok {
		if w, found := weights.Get(role); found {
			return w
		}
	}
	return 1.0
}

func register[T any](reg *flags.Registry, f flags.Flag[T]) error {
	_, err := flags.Register(reg, f)
	return err
}
