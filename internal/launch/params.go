// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package launch

import (
	"bytes"
	"encoding/csv"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Params is the set of invocation parameters
// passed to the entry function.
type Params struct {
	// Debug is true if -d or --debug appeared on the command line.
	Debug bool
	// EvalList holds the operands of each -e flag in command-line order.
	// It is nil (not merely empty) if no -e flag was given.
	EvalList []string
	// SrcFile is the first positional argument.
	// It is only meaningful if HasSrcFile is true.
	SrcFile    string
	HasSrcFile bool
}

// AddFlags registers the invocation parameter flags on fs.
// Values parsed by fs are stored in p.
func (p *Params) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&p.Debug, "debug", "d", false, "set the debug parameter")
	fs.VarP((*evalListFlag)(&p.EvalList), "eval", "e", "append `chunk` to the evaluation list (repeatable)")
}

// SetArgs records the positional arguments left over after flag parsing.
// Only the first argument is used.
func (p *Params) SetArgs(args []string) {
	if len(args) == 0 {
		p.SrcFile = ""
		p.HasSrcFile = false
		return
	}
	p.SrcFile = args[0]
	p.HasSrcFile = true
}

// RemoveUnknownFlags returns a copy of args
// (excluding the program name)
// without the options that are not defined in fs,
// so that they are ignored instead of rejected.
// Unknown options never consume the following argument.
// Operands of known options that take a value are kept verbatim,
// and everything after "--" is kept.
func RemoveUnknownFlags(fs *pflag.FlagSet, args []string) []string {
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(filtered, args[i:]...)
		case len(arg) < 2 || arg[0] != '-':
			filtered = append(filtered, arg)
		case arg[1] == '-':
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			filtered = append(filtered, arg)
			if !hasValue && f.NoOptDefVal == "" && i+1 < len(args) {
				i++
				filtered = append(filtered, args[i])
			}
		default:
			shorthands, needsNext := knownShorthands(fs, arg[1:])
			if shorthands == "" {
				continue
			}
			filtered = append(filtered, "-"+shorthands)
			if needsNext && i+1 < len(args) {
				i++
				filtered = append(filtered, args[i])
			}
		}
	}
	return filtered
}

// knownShorthands filters a group of shorthand flags (e.g. "dxe")
// down to the ones defined in fs.
// The first known shorthand that takes a value ends the group:
// the rest of the group is its value,
// or if the group ends there, needsNext reports that the next argument is.
func knownShorthands(fs *pflag.FlagSet, group string) (known string, needsNext bool) {
	sb := new(strings.Builder)
	for j := 0; j < len(group); j++ {
		f := fs.ShorthandLookup(group[j : j+1])
		if f == nil {
			continue
		}
		sb.WriteByte(group[j])
		if f.NoOptDefVal == "" {
			if j+1 < len(group) {
				sb.WriteString(group[j+1:])
				return sb.String(), false
			}
			return sb.String(), true
		}
	}
	return sb.String(), false
}

// evalListFlag is the implementation of [pflag.Value] and [pflag.SliceValue]
// for the -e flag.
// It is similar to [pflag.StringArray],
// but leaves the slice nil until the first value is set.
type evalListFlag []string

func (f *evalListFlag) Type() string { return "stringArray" }
func (f *evalListFlag) Get() any     { return []string(*f) }

func (f *evalListFlag) GetSlice() []string {
	return slices.Clone(*f)
}

func (f *evalListFlag) String() string {
	buf := new(bytes.Buffer)
	buf.WriteString("[")
	w := csv.NewWriter(buf)
	_ = w.Write(*f)
	w.Flush()
	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	b = append(b, "]"...)
	return string(b)
}

func (f *evalListFlag) Set(s string) error {
	*f = append(*f, s)
	return nil
}

func (f *evalListFlag) Append(s string) error {
	return f.Set(s)
}

func (f *evalListFlag) Replace(val []string) error {
	if len(val) == 0 {
		*f = nil
		return nil
	}
	*f = slices.Clone(val)
	return nil
}
