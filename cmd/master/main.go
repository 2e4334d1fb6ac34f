// FILE: lixenwraith/flags/cmd/master/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"

	"github.com/lixenwraith/flags"
	"github.com/lixenwraith/flags/master"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const program = "mesos-master"

func main() {
	lookup, err := envLookup(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", program, err)
		os.Exit(1)
	}

	var cfg master.Flags
	code, ok := run(&cfg, os.Args[1:], lookup, os.Stdout, os.Stderr)
	if !ok {
		os.Exit(code)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, &cfg, newLogger(&cfg, os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", program, err)
		os.Exit(1)
	}
}

// run resolves the master flags into cfg. It returns the exit code and
// whether the master should go on serving.
func run(cfg *master.Flags, args []string, lookup flags.LookupFunc, stdout, stderr io.Writer) (int, bool) {
	reg := master.NewRegistry(cfg)

	bootLogger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	res, err := master.NewResolver(reg).
		WithArgs(args).
		WithLookup(lookup).
		WithLogger(bootLogger).
		Resolve()

	switch {
	case errors.Is(err, flags.ErrHelp):
		if werr := reg.WriteUsage(stdout, program); werr != nil {
			fmt.Fprintf(stderr, "%s: %v\n", program, werr)
			return 1, false
		}
		return 0, false
	case errors.Is(err, flags.ErrVersion):
		fmt.Fprintf(stdout, "%s %s\n", program, version)
		return 0, false
	case err != nil:
		printErrors(stderr, err)
		fmt.Fprintf(stderr, "\nSee '%s --help' for usage.\n", program)
		return 1, false
	}

	logger := newLogger(cfg, stderr)
	for name, envVar := range flags.DiscoverEnv(reg, master.EnvPrefix, lookup) {
		logger.Debug("Flag set from environment", "flag", name, "env", envVar)
	}
	if len(res.Positional) > 0 {
		logger.Warn("Ignoring positional arguments", "args", res.Positional)
	}
	if res.FilePath != "" {
		logger.Info("Loaded config file", "path", res.FilePath)
	}
	logger.Debug(res.Debug())
	return 0, true
}

// printErrors writes one line per collected error.
func printErrors(w io.Writer, err error) {
	var re *flags.ResolveError
	if errors.As(err, &re) {
		for _, fe := range re.Errors {
			fmt.Fprintf(w, "%s: %v\n", program, fe)
		}
		return
	}
	fmt.Fprintf(w, "%s: %v\n", program, err)
}

func newLogger(cfg *master.Flags, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// serve loads the files the flags point at and keeps the whitelist current
// until ctx is done.
func serve(ctx context.Context, cfg *master.Flags, logger *slog.Logger) error {
	path, err := cfg.CredentialsFile()
	if err != nil {
		return err
	}
	if path != "" {
		if insecure, err := master.InsecurePermissions(path); err == nil && insecure {
			logger.Warn("Credentials file is readable by group or others", "path", path)
		}
		creds, err := master.ReadCredentials(path)
		if err != nil {
			return err
		}
		logger.Info("Loaded credentials", "principals", len(creds))
	}

	wl, err := master.ReadWhitelist(cfg.Whitelist)
	if err != nil {
		return err
	}
	var current atomic.Pointer[master.Whitelist]
	current.Store(&wl)
	if wl.All() {
		logger.Info("No whitelist given, advertising offers to all slaves")
	} else {
		logger.Info("Advertising offers to whitelisted slaves", "hosts", len(wl.Hosts()))
	}

	logger.Info("Master started",
		"id", uuid.NewString(),
		"work_dir", cfg.WorkDir,
		"cluster", cfg.Cluster.GetOr(""),
		"allocation_interval", flags.FormatDuration(cfg.AllocationInterval),
		"recovery_slave_removal_limit", cfg.RecoverySlaveRemovalFraction())

	watching := master.WatchWhitelist(ctx, cfg.Whitelist, logger, func(next master.Whitelist) {
		current.Store(&next)
	})
	<-ctx.Done()
	<-watching
	logger.Info("Shutting down")
	return nil
}
