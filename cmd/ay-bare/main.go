// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

// ay-bare loads the Lua module "main" and calls its main function
// with no arguments.
// Command-line arguments are not examined.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/ay-lang/ay/internal/launch"
	"github.com/ay-lang/ay/internal/luart"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"
)

func main() {
	log.SetDefault(&log.LevelFilter{
		Min:    log.Info,
		Output: log.New(os.Stderr, "ay-bare: ", log.StdFlags, nil),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := run(ctx, os.Stdout)
	cancel()
	if err != nil {
		log.Errorf(context.Background(), "%v", err)
		os.Exit(launch.ExitCode(err))
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	state := luart.New(&luart.Options{Stdout: stdout})
	defer state.Close()
	return launch.Run(ctx, state, nil, nil)
}
