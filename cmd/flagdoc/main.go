// FILE: lixenwraith/flags/cmd/flagdoc/main.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/flags"
	"github.com/lixenwraith/flags/master"
)

// options configures the generator itself.
type options struct {
	Format    string
	Output    flags.Option[string]
	EnvPrefix string
}

func newRegistry(opts *options) *flags.Registry {
	reg := flags.NewRegistry()
	flags.MustRegister(reg, flags.Flag[string]{
		Name:    "format",
		Help:    "Output format: markdown, yaml or toml",
		Target:  &opts.Format,
		Coercer: flags.String{},
		Default: flags.Ptr(flags.ReferenceMarkdown),
	})
	flags.MustRegister(reg, flags.Flag[flags.Option[string]]{
		Name:    "output",
		Help:    "File to write, stdout when unset",
		Target:  &opts.Output,
		Coercer: flags.OptionalOf[string](flags.Path{}),
	})
	flags.MustRegister(reg, flags.Flag[string]{
		Name:    "env_prefix",
		Help:    "Environment prefix shown for each flag",
		Target:  &opts.EnvPrefix,
		Coercer: flags.String{},
		Default: flags.Ptr(master.EnvPrefix),
	})
	reg.MustAddValidator(flags.OneOf("format", flags.ReferenceFormats...))
	return reg
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	reg := newRegistry(&opts)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	_, err := flags.NewResolver(reg).
		WithArgs(args).
		WithEnvPrefix("FLAGDOC_").
		WithLogger(logger).
		Resolve()
	switch {
	case errors.Is(err, flags.ErrHelp):
		reg.WriteUsage(stdout, "flagdoc")
		return 0
	case errors.Is(err, flags.ErrVersion):
		fmt.Fprintln(stdout, "flagdoc dev")
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "flagdoc: %v\n", err)
		return 1
	}

	var doc bytes.Buffer
	var cfg master.Flags
	if err := master.NewRegistry(&cfg).WriteReference(&doc, opts.Format, opts.EnvPrefix); err != nil {
		fmt.Fprintf(stderr, "flagdoc: %v\n", err)
		return 1
	}

	path, ok := opts.Output.Get()
	if !ok {
		if _, err := stdout.Write(doc.Bytes()); err != nil {
			fmt.Fprintf(stderr, "flagdoc: %v\n", err)
			return 1
		}
		return 0
	}
	if err := os.WriteFile(path, doc.Bytes(), 0644); err != nil {
		fmt.Fprintf(stderr, "flagdoc: failed to write '%s': %v\n", path, err)
		return 1
	}
	logger.Info("Reference written", "path", path, "format", opts.Format)
	return 0
}
