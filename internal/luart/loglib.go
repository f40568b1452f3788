// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package luart

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"zombiezen.com/go/log"
)

// LogLibraryName is the module name of the log library
// preloaded by [*State.OpenStandardLibraries].
const LogLibraryName = "log"

func openLog(l *lua.LState) int {
	mod := l.SetFuncs(l.NewTable(), map[string]lua.LGFunction{
		"debug": logFunction(log.Debug),
		"info":  logFunction(log.Info),
		"warn":  logFunction(log.Warn),
		"error": logFunction(log.Error),
	})
	l.Push(mod)
	return 1
}

// logFunction returns a Lua function that writes its arguments,
// converted with tostring and separated by spaces,
// to the logger at the given level.
func logFunction(level log.Level) lua.LGFunction {
	return func(l *lua.LState) int {
		if !log.IsEnabled(level) {
			return 0
		}
		ctx := l.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		top := l.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, l.ToStringMeta(l.Get(i)).String())
		}
		msg := strings.Join(parts, " ")
		switch level {
		case log.Debug:
			log.Debugf(ctx, "%s", msg)
		case log.Info:
			log.Infof(ctx, "%s", msg)
		case log.Warn:
			log.Warnf(ctx, "%s", msg)
		default:
			log.Errorf(ctx, "%s", msg)
		}
		return 0
	}
}
