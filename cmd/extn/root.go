// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/extn/cmd/extn/commands"
	"github.com/walteh/extn/cmd/extn/opts"
	"github.com/walteh/extn/pkg/config"
	"github.com/walteh/extn/pkg/log"
	"github.com/walteh/extn/pkg/operation"
	"github.com/walteh/extn/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the global flags
type rootFlags struct {
	configFile string
	debug      bool
	verbose    bool
}

// addRootFlags adds shared flags to fs
func addRootFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.StringVarP(&f.configFile, "config", "c", "", "config file path (default: .extnrc.{yaml,yml,hcl,json,toml} in the working directory)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print every rename")
}

// preparseFlags reads the global flags ahead of cobra. The config file has to
// be known before the command tree exists because it can add aliases.
func preparseFlags(args []string) rootFlags {
	var f rootFlags
	fs := pflag.NewFlagSet("extn", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolP("help", "h", false, "")
	addRootFlags(fs, &f)

	// cobra reports bad flags later on
	_ = fs.Parse(args)

	return f
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// loadConfig loads the explicit config file or looks for one in dir
func loadConfig(ctx context.Context, path string, dir string) (*config.Config, error) {
	if path != "" {
		return config.Load(ctx, path)
	}
	return config.Discover(ctx, dir)
}

// newRootOpts creates the shared options with initialized dependencies
func newRootOpts(ctx context.Context, f rootFlags, dir string, userLogger *log.UserLogger) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx, f.configFile, dir)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if cfg.Location() != "" {
		zerolog.Ctx(ctx).Debug().Str("path", cfg.Location()).Msg("loaded config")
	}

	if cfg.Verbose {
		userLogger.SetVerbose(true)
	}

	runner := operation.NewRunner(operation.Options{
		Observer: func(e plan.Entry) {
			userLogger.LogRename(e.Source, e.Destination)
		},
		SkipPreflight: cfg.SkipPreflight,
	})

	return &opts.RootOpts{
		Config:     cfg,
		UserLogger: userLogger,
		Runner:     runner,
	}, nil
}

// newRootCmd builds the command tree around o
func newRootCmd(o *opts.RootOpts) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "extn",
		Short: "Toggle, swap, set, add and remove file extensions",
		Long: `extn renames files by changing their extension.

Files can be given as paths or glob patterns ("*.txt", "src/**/*.yml").
Nothing is renamed when any destination would collide, and existing files
are never overwritten.`,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// values were already read by preparseFlags; these keep help and
	// validation in cobra
	addRootFlags(cmd.PersistentFlags(), &rootFlags{})

	renames, err := commands.NewRenameCmds(o)
	if err != nil {
		return nil, errors.Errorf("building commands: %w", err)
	}
	cmd.AddCommand(renames...)
	cmd.AddCommand(newVersionCmd())

	return cmd, nil
}

// execute runs extn with args and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f := preparseFlags(args)

	logger := setupLogging(stderr, f.debug)
	ctx = logger.WithContext(ctx)

	userLogger := log.NewUserLogger(ctx, stderr, f.verbose)

	dir, err := os.Getwd()
	if err != nil {
		userLogger.LogError("getting working directory", err)
		return 1
	}

	o, err := newRootOpts(ctx, f, dir, userLogger)
	if err != nil {
		userLogger.LogError("starting extn", err)
		return 1
	}

	root, err := newRootCmd(o)
	if err != nil {
		userLogger.LogError("starting extn", err)
		return 1
	}

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		name := "extn"
		if cmd != nil {
			name = cmd.Name()
		}
		userLogger.LogError(name+" failed", err)
		return 1
	}

	return 0
}
