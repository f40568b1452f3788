// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ay-lang/ay/internal/launch"
	"github.com/ay-lang/ay/internal/testcontext"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	const source = `function main(...) print("args", select("#", ...)) end`
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(source), 0o666); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LUA_PATH", filepath.Join(dir, "?.lua"))
	ctx, cancel := testcontext.New(t)
	defer cancel()

	out := new(bytes.Buffer)
	err := run(ctx, out)
	if got := launch.ExitCode(err); got != 0 {
		t.Fatalf("run: %v (exit code %d)", err, got)
	}
	if got, want := out.String(), "args\t0\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestRunFailure(t *testing.T) {
	dir := t.TempDir()
	const source = `function main() local t = nil; return t.field end`
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(source), 0o666); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LUA_PATH", filepath.Join(dir, "?.lua"))
	ctx, cancel := testcontext.New(t)
	defer cancel()

	err := run(ctx, new(bytes.Buffer))
	if got, want := launch.ExitCode(err), int(launch.StatusRuntimeError); got != want {
		t.Errorf("run() = %v (exit code %d); want exit code %d", err, got, want)
	}
}
