// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

// Package luart provides a [launch.Runtime] backed by gopher-lua,
// a Lua 5.1 virtual machine written in Go.
package luart

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ay-lang/ay/internal/launch"
	"github.com/yuin/gluare"
	lua "github.com/yuin/gopher-lua"
)

// Options is the set of parameters for [New].
type Options struct {
	// PackagePath is a list of templates (e.g. "/usr/share/ay/?.lua")
	// prepended to package.path.
	PackagePath []string
	// CallStackSize and RegistrySize bound the size of the Lua stacks.
	// Zero values use gopher-lua's defaults.
	CallStackSize int
	RegistrySize  int
	// IncludeGoStackTrace adds a Go stack trace to errors from Go panics.
	IncludeGoStackTrace bool
	// Stdout is the destination of the print and io.write functions.
	// If nil, os.Stdout is used.
	// The io.stdout file handle always refers to the process's standard output.
	Stdout io.Writer
}

// extensions is the set of libraries accepted by [*State.RegisterLibrary].
var extensions = map[string]lua.LGFunction{
	launch.PatternLibrary: gluare.Loader,
}

// Extensions returns the names of the libraries
// that can be passed to [*State.RegisterLibrary] in sorted order.
func Extensions() []string {
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// State is a Lua execution context.
// It implements [launch.Runtime].
// A State must not be used from multiple goroutines concurrently.
type State struct {
	l           *lua.LState
	packagePath []string
	stdout      io.Writer
}

var _ launch.Runtime = (*State)(nil)

// New returns a new Lua execution context with no libraries loaded.
// The caller is responsible for calling [*State.Close].
func New(opts *Options) *State {
	if opts == nil {
		opts = new(Options)
	}
	s := &State{
		l: lua.NewState(lua.Options{
			CallStackSize:       opts.CallStackSize,
			RegistrySize:        opts.RegistrySize,
			SkipOpenLibs:        true,
			IncludeGoStackTrace: opts.IncludeGoStackTrace,
		}),
		packagePath: slices.Clone(opts.PackagePath),
		stdout:      opts.Stdout,
	}
	if s.stdout == nil {
		s.stdout = os.Stdout
	}
	return s
}

// Close releases the resources held by the state.
func (s *State) Close() {
	s.l.Close()
}

// withContext installs ctx on the Lua state for the duration of f
// so that a canceled context interrupts running Lua code.
func (s *State) withContext(ctx context.Context, f func() error) error {
	s.l.SetContext(ctx)
	defer s.l.RemoveContext()
	return f()
}

// OpenStandardLibraries loads the Lua standard libraries,
// replaces print and io.write with ones that write to [Options.Stdout],
// applies [Options.PackagePath]
// and preloads the log module.
func (s *State) OpenStandardLibraries(ctx context.Context) error {
	return s.withContext(ctx, func() error {
		err := s.l.CallByParam(lua.P{
			Fn:      s.l.NewFunction(s.openLibs),
			NRet:    0,
			Protect: true,
		})
		if err != nil {
			return convertError(err)
		}
		return nil
	})
}

func (s *State) openLibs(l *lua.LState) int {
	l.OpenLibs()
	l.SetGlobal("print", l.NewFunction(s.print))
	if iolib, ok := l.GetGlobal(lua.IoLibName).(*lua.LTable); ok {
		iolib.RawSetString("write", l.NewFunction(s.ioWrite(iolib.RawGetString("stdout"))))
	}

	if len(s.packagePath) > 0 {
		pkg, ok := l.GetGlobal(lua.LoadLibName).(*lua.LTable)
		if !ok {
			l.RaiseError("%s library not loaded", lua.LoadLibName)
		}
		path := lua.LVAsString(pkg.RawGetString("path"))
		templates := append(slices.Clone(s.packagePath), path)
		pkg.RawSetString("path", lua.LString(strings.Join(templates, lua.LuaPathSep)))
	}

	l.PreloadModule(LogLibraryName, openLog)
	return 0
}

// print is the replacement for the base library's print function.
func (s *State) print(l *lua.LState) int {
	top := l.GetTop()
	sb := new(strings.Builder)
	for i := 1; i <= top; i++ {
		if i > 1 {
			sb.WriteString("\t")
		}
		sb.WriteString(l.ToStringMeta(l.Get(i)).String())
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(s.stdout, sb.String()); err != nil {
		l.RaiseError("print: %v", err)
	}
	return 0
}

// ioWrite returns the replacement for io.write.
// Like the standard io.write, it accepts only strings and numbers
// and returns the standard output handle on success.
func (s *State) ioWrite(handle lua.LValue) lua.LGFunction {
	return func(l *lua.LState) int {
		top := l.GetTop()
		for i := 1; i <= top; i++ {
			var str string
			switch v := l.Get(i).(type) {
			case lua.LString:
				str = string(v)
			case lua.LNumber:
				str = v.String()
			default:
				l.ArgError(i, "string expected, got "+v.Type().String())
			}
			if _, err := io.WriteString(s.stdout, str); err != nil {
				l.Push(lua.LNil)
				l.Push(lua.LString(err.Error()))
				return 2
			}
		}
		l.Push(handle)
		return 1
	}
}

// RegisterLibrary registers the named extension library.
// The library is added to package.preload
// and its module table is assigned to the global of the same name.
func (s *State) RegisterLibrary(ctx context.Context, name string) error {
	open := extensions[name]
	if open == nil {
		return launch.NewError(launch.StatusRuntimeError, fmt.Errorf("unknown library %q (available: %s)", name, strings.Join(Extensions(), ", ")))
	}
	return s.withContext(ctx, func() error {
		err := s.l.CallByParam(lua.P{
			Fn: s.l.NewFunction(func(l *lua.LState) int {
				l.PreloadModule(name, open)
				l.Push(l.GetGlobal("require"))
				l.Push(lua.LString(name))
				l.Call(1, 1)
				l.SetGlobal(name, l.Get(-1))
				return 0
			}),
			NRet:    0,
			Protect: true,
		})
		if err != nil {
			return convertError(err)
		}
		return nil
	})
}

// LoadModule requires the named module
// and returns the global function of the same name.
func (s *State) LoadModule(ctx context.Context, name string) (launch.Entry, error) {
	var fn *lua.LFunction
	err := s.withContext(ctx, func() error {
		err := s.l.CallByParam(lua.P{
			Fn:      s.l.GetGlobal("require"),
			NRet:    0,
			Protect: true,
		}, lua.LString(name))
		if err != nil {
			return convertError(err)
		}
		v := s.l.GetGlobal(name)
		var ok bool
		fn, ok = v.(*lua.LFunction)
		if !ok {
			return launch.NewError(launch.StatusRuntimeError, fmt.Errorf("global %s is a %s value, not a function", name, v.Type()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry{state: s, fn: fn}, nil
}

// entry is a Lua function returned by [*State.LoadModule].
type entry struct {
	state *State
	fn    *lua.LFunction
}

// Call calls the function in protected mode.
// If params is not nil, it is converted to a table with the fields
// "debug", "evallist" and "srcfile".
func (e *entry) Call(ctx context.Context, params *launch.Params) error {
	l := e.state.l
	return e.state.withContext(ctx, func() error {
		var args []lua.LValue
		if params != nil {
			args = append(args, paramsTable(l, params))
		}
		err := l.CallByParam(lua.P{
			Fn:      e.fn,
			NRet:    0,
			Protect: true,
		}, args...)
		if err != nil {
			return convertError(err)
		}
		return nil
	})
}

// paramsTable converts invocation parameters to a Lua table.
// "evallist" and "srcfile" are only set if present.
func paramsTable(l *lua.LState, params *launch.Params) *lua.LTable {
	tab := l.CreateTable(0, 3)
	if params.EvalList != nil {
		list := l.CreateTable(len(params.EvalList), 0)
		for _, chunk := range params.EvalList {
			list.Append(lua.LString(chunk))
		}
		tab.RawSetString("evallist", list)
	}
	tab.RawSetString("debug", lua.LBool(params.Debug))
	if params.HasSrcFile {
		tab.RawSetString("srcfile", lua.LString(params.SrcFile))
	}
	return tab
}
