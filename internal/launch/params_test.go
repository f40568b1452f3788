// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package launch

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestRemoveUnknownFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "Empty",
			args: []string{},
			want: []string{},
		},
		{
			name: "KnownFlags",
			args: []string{"-d", "--debug", "-e", "x", "--eval=y", "main.lua"},
			want: []string{"-d", "--debug", "-e", "x", "--eval=y", "main.lua"},
		},
		{
			name: "UnknownShortBeforeFile",
			args: []string{"-x", "x.lua"},
			want: []string{"x.lua"},
		},
		{
			name: "UnknownLongBeforeFile",
			args: []string{"--bogus", "x.lua"},
			want: []string{"x.lua"},
		},
		{
			name: "UnknownLongWithValue",
			args: []string{"--bogus=1", "x.lua"},
			want: []string{"x.lua"},
		},
		{
			name: "UnknownInGroup",
			args: []string{"-dx", "x.lua"},
			want: []string{"-d", "x.lua"},
		},
		{
			name: "GroupEndingInEval",
			args: []string{"-xde", "chunk", "x.lua"},
			want: []string{"-de", "chunk", "x.lua"},
		},
		{
			name: "EvalAttached",
			args: []string{"-ex=1"},
			want: []string{"-ex=1"},
		},
		{
			name: "EvalOperandLooksLikeFlag",
			args: []string{"-e", "-x", "--eval", "--bogus"},
			want: []string{"-e", "-x", "--eval", "--bogus"},
		},
		{
			name: "MissingEvalOperand",
			args: []string{"-d", "-e"},
			want: []string{"-d", "-e"},
		},
		{
			name: "DoubleDash",
			args: []string{"-x", "--", "-x", "--bogus"},
			want: []string{"--", "-x", "--bogus"},
		},
		{
			name: "SingleDash",
			args: []string{"-"},
			want: []string{"-"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("ay", pflag.ContinueOnError)
			new(Params).AddFlags(fs)
			got := RemoveUnknownFlags(fs, test.args)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("RemoveUnknownFlags(fs, %q) (-want +got):\n%s", test.args, diff)
			}
		})
	}
}

func TestParamsAddFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *Params
	}{
		{
			name: "Empty",
			args: []string{},
			want: &Params{},
		},
		{
			name: "EvalOrder",
			args: []string{"-e", "a", "-e", "b", "--eval", "c"},
			want: &Params{EvalList: []string{"a", "b", "c"}},
		},
		{
			name: "GroupedShorthands",
			args: []string{"-de", "chunk"},
			want: &Params{Debug: true, EvalList: []string{"chunk"}},
		},
		{
			name: "UnknownOptionsIgnored",
			args: []string{"-x", "--bogus", "-dx", "x.lua"},
			want: &Params{Debug: true, SrcFile: "x.lua", HasSrcFile: true},
		},
		{
			name: "DoubleDash",
			args: []string{"--", "-d"},
			want: &Params{SrcFile: "-d", HasSrcFile: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("ay", pflag.ContinueOnError)
			fs.SetOutput(io.Discard)
			got := new(Params)
			got.AddFlags(fs)
			if err := fs.Parse(RemoveUnknownFlags(fs, test.args)); err != nil {
				t.Fatalf("Parse(%q): %v", test.args, err)
			}
			got.SetArgs(fs.Args())
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("after parsing %q (-want +got):\n%s", test.args, diff)
			}
		})
	}
}

func TestParamsSetArgs(t *testing.T) {
	p := &Params{SrcFile: "old.lua", HasSrcFile: true}
	p.SetArgs(nil)
	if p.HasSrcFile || p.SrcFile != "" {
		t.Errorf("after SetArgs(nil): SrcFile = %q, HasSrcFile = %t; want \"\", false", p.SrcFile, p.HasSrcFile)
	}
	p.SetArgs([]string{""})
	if !p.HasSrcFile || p.SrcFile != "" {
		t.Errorf("after SetArgs([\"\"]): SrcFile = %q, HasSrcFile = %t; want \"\", true", p.SrcFile, p.HasSrcFile)
	}
}

func TestEvalListFlag(t *testing.T) {
	var list []string
	f := (*evalListFlag)(&list)
	if got, want := f.String(), "[]"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if err := f.Set("a"); err != nil {
		t.Fatal(err)
	}
	if err := f.Append("b,c"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b,c"}, list); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
	if got, want := f.String(), `[a,"b,c"]`; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if err := f.Replace(nil); err != nil {
		t.Fatal(err)
	}
	if list != nil {
		t.Errorf("after Replace(nil), list = %#v; want nil", list)
	}
}
