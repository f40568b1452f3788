// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package launch

import (
	"context"
	"errors"
	"fmt"

	"zombiezen.com/go/log"
)

// EntryModule is the name of the script module loaded at startup.
// The module must define a global function of the same name.
const EntryModule = "main"

// PatternLibrary is the name of the pattern-matching extension
// registered by default.
const PatternLibrary = "re"

// Runtime is an embedded scripting runtime.
type Runtime interface {
	// OpenStandardLibraries loads the runtime's standard library.
	OpenStandardLibraries(ctx context.Context) error
	// RegisterLibrary makes the named extension library
	// available to scripts.
	RegisterLibrary(ctx context.Context, name string) error
	// LoadModule loads the named script module
	// and returns the global function of the same name.
	LoadModule(ctx context.Context, name string) (Entry, error)
}

// Entry is an entry function obtained from [Runtime.LoadModule].
type Entry interface {
	// Call invokes the function.
	// If params is nil, then the function is called with no arguments.
	// Otherwise, params is passed as the sole argument.
	Call(ctx context.Context, params *Params) error
}

// Options is the set of parameters for [Run].
// The zero value is equivalent to [DefaultOptions].
type Options struct {
	// Module is the name of the entry module.
	// If empty, [EntryModule] is used.
	Module string
	// Libraries is the list of extension libraries to register
	// before loading the module.
	// If nil, only [PatternLibrary] is registered.
	// A non-nil empty slice registers nothing.
	Libraries []string
}

// DefaultOptions returns the options used when [Run] is passed nil.
func DefaultOptions() *Options {
	return &Options{
		Module:    EntryModule,
		Libraries: []string{PatternLibrary},
	}
}

func (opts *Options) module() string {
	if opts == nil || opts.Module == "" {
		return EntryModule
	}
	return opts.Module
}

func (opts *Options) libraries() []string {
	if opts == nil || opts.Libraries == nil {
		return []string{PatternLibrary}
	}
	return opts.Libraries
}

// Run initializes rt, loads the entry module
// and calls its entry function with params.
// A nil params calls the entry function with no arguments.
// The error returned from Run, if any, is always an [*Error].
func Run(ctx context.Context, rt Runtime, opts *Options, params *Params) error {
	log.Debugf(ctx, "Opening standard libraries")
	if err := rt.OpenStandardLibraries(ctx); err != nil {
		return wrapError("open libraries", err)
	}
	for _, name := range opts.libraries() {
		log.Debugf(ctx, "Registering library %q", name)
		if err := rt.RegisterLibrary(ctx, name); err != nil {
			return wrapError("register "+name, err)
		}
	}

	module := opts.module()
	log.Debugf(ctx, "Loading module %q", module)
	entry, err := rt.LoadModule(ctx, module)
	if err != nil {
		return wrapError("load "+module, err)
	}

	if params == nil {
		log.Debugf(ctx, "Calling %s()", module)
	} else {
		log.Debugf(ctx, "Calling %s(%+v)", module, *params)
	}
	if err := entry.Call(ctx, params); err != nil {
		return wrapError("call "+module, err)
	}
	return nil
}

// Error is a failure reported by the embedded runtime.
type Error struct {
	// Op is the step that failed (e.g. "load main").
	Op string
	// Status is the runtime's failure code.
	// It is never [StatusOK].
	Status Status
	// Err is the underlying error.
	Err error
}

// NewError returns a new [*Error] with the given status.
// If status is [StatusOK], [StatusRuntimeError] is used instead.
func NewError(status Status, err error) *Error {
	if status == StatusOK {
		status = StatusRuntimeError
	}
	return &Error{Status: status, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError converts err into an [*Error] for the given step.
// Statuses already attached to err are preserved.
func wrapError(op string, err error) *Error {
	if e := (*Error)(nil); errors.As(err, &e) {
		e2 := *e
		if e2.Op == "" {
			e2.Op = op
		}
		if e2.Status == StatusOK {
			e2.Status = StatusRuntimeError
		}
		return &e2
	}
	return &Error{Op: op, Status: StatusRuntimeError, Err: err}
}

// ExitCode returns the process exit code for an error returned by [Run].
// A nil error yields 0,
// an [*Error] yields its status
// and any other error yields 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e := (*Error)(nil); errors.As(err, &e) {
		if e.Status == StatusOK {
			return int(StatusRuntimeError)
		}
		return int(e.Status)
	}
	return 1
}
