// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"iter"
	"os"

	"go4.org/xdgdir"
	"golang.org/x/sys/unix"
)

var interruptSignals = []os.Signal{
	unix.SIGTERM,
	unix.SIGINT,
}

// systemConfigDirs returns a sequence of configuration directory paths
// in increasing order of preference (i.e. later entries should override earlier entries).
func systemConfigDirs() iter.Seq[string] {
	return func(yield func(string) bool) {
		paths := xdgdir.Config.SearchPaths()
		for i := len(paths) - 1; i >= 0; i-- {
			if !yield(paths[i]) {
				return
			}
		}
	}
}
