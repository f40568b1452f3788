// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

// ay loads the Lua module "main" and calls its main function
// with the parameters given on the command line.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/ay-lang/ay/internal/launch"
	"github.com/ay-lang/ay/internal/luart"
	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
)

// ayVersion is the version string filled in by the linker (e.g. "1.2.3").
var ayVersion string

type rootOptions struct {
	params     launch.Params
	verbose    bool
	configFile string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), interruptSignals...)
	code := realMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// realMain runs the root command with the given arguments
// (excluding the program name)
// and returns the process exit code.
// Failures are reported to stderr.
func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	g := defaultGlobalConfig()
	rootCommand := newRootCommand(g, stderr)
	rootCommand.SetOut(stdout)
	rootCommand.SetErr(stderr)
	rootCommand.InitDefaultHelpFlag()
	rootCommand.InitDefaultVersionFlag()
	rootCommand.SetArgs(launch.RemoveUnknownFlags(rootCommand.Flags(), args))
	err := rootCommand.ExecuteContext(ctx)
	if err != nil {
		initLogging(stderr, g.Debug)
		log.Errorf(ctx, "%v", err)
		return launch.ExitCode(err)
	}
	return 0
}

func newRootCommand(g *globalConfig, stderr io.Writer) *cobra.Command {
	c := &cobra.Command{
		Use:                   "ay [options] [FILE]",
		Short:                 "run the Lua main module",
		Version:               versionString(),
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(rootOptions)
	opts.params.AddFlags(c.Flags())
	c.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "show debugging output")
	c.Flags().StringVar(&opts.configFile, "config", os.Getenv("AY_CONFIG"), "read additional configuration from `path`")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if err := g.load(opts.configFile); err != nil {
			return err
		}
		if opts.verbose {
			g.Debug = true
		}
		initLogging(stderr, g.Debug)
		opts.params.SetArgs(args)
		return run(cmd.Context(), g, cmd.OutOrStdout(), &opts.params)
	}
	return c
}

// run executes the main module.
// A nil params calls the entry function with no arguments.
func run(ctx context.Context, g *globalConfig, stdout io.Writer, params *launch.Params) error {
	state := luart.New(g.runtimeOptions(stdout))
	defer state.Close()
	return launch.Run(ctx, state, launch.DefaultOptions(), params)
}

func versionString() string {
	if ayVersion == "" {
		return "(unknown)"
	}
	return ayVersion
}

func initLogging(stderr io.Writer, showDebug bool) {
	minLogLevel := log.Info
	if showDebug {
		minLogLevel = log.Debug
	}
	log.SetDefault(&log.LevelFilter{
		Min:    minLogLevel,
		Output: log.New(stderr, "ay: ", log.StdFlags, nil),
	})
}
