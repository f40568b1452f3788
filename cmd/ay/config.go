// Copyright 2026 The ay Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ay-lang/ay/internal/luart"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
)

type globalConfig struct {
	Debug bool `json:"debug"`
	// PackagePath is a list of templates searched before the default package.path,
	// in order of preference.
	PackagePath   []string `json:"packagePath"`
	CallStackSize int      `json:"callStackSize"`
	RegistrySize  int      `json:"registrySize"`
	GoStackTrace  bool     `json:"goStackTrace"`
}

func defaultGlobalConfig() *globalConfig {
	return new(globalConfig)
}

// load merges the configuration files,
// then the environment,
// then validates the result.
// If extraFile is not empty, it is read after the system configuration files
// and must exist.
func (g *globalConfig) load(extraFile string) error {
	if extraFile != "" {
		if _, err := os.Stat(extraFile); err != nil {
			return fmt.Errorf("read config: %v", err)
		}
	}
	if err := g.mergeFiles(configFiles(extraFile)); err != nil {
		return err
	}
	if err := g.mergeEnvironment(); err != nil {
		return err
	}
	return g.validate()
}

func (g *globalConfig) mergeEnvironment() error {
	if path := os.Getenv("AY_PATH"); path != "" {
		var templates []string
		for _, t := range strings.Split(path, ";") {
			if t != "" {
				templates = append(templates, t)
			}
		}
		g.PackagePath = append(templates, g.PackagePath...)
	}
	return nil
}

// configFiles returns the configuration file paths
// in increasing order of preference.
func configFiles(extraFile string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for dir := range systemConfigDirs() {
			if !yield(filepath.Join(dir, "ay", "config.jwcc")) {
				return
			}
		}
		if extraFile != "" {
			yield(extraFile)
		}
	}
}

func (g *globalConfig) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, g, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}

	return nil
}

// UnmarshalJSONFrom unmarshals the configuration object from the JSON decoder,
// merging any fields in the JSON object with existing values.
// Package path entries from later files are searched first.
func (g *globalConfig) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// Keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "debug":
			if err := jsonv2.UnmarshalDecode(in, &g.Debug); err != nil {
				return fmt.Errorf("unmarshal config.debug: %w", err)
			}
		case "packagePath":
			var newPath []string
			if err := jsonv2.UnmarshalDecode(in, &newPath); err != nil {
				return fmt.Errorf("unmarshal config.packagePath: %w", err)
			}
			g.PackagePath = append(newPath, g.PackagePath...)
		case "callStackSize":
			if err := jsonv2.UnmarshalDecode(in, &g.CallStackSize); err != nil {
				return fmt.Errorf("unmarshal config.callStackSize: %w", err)
			}
		case "registrySize":
			if err := jsonv2.UnmarshalDecode(in, &g.RegistrySize); err != nil {
				return fmt.Errorf("unmarshal config.registrySize: %w", err)
			}
		case "goStackTrace":
			if err := jsonv2.UnmarshalDecode(in, &g.GoStackTrace); err != nil {
				return fmt.Errorf("unmarshal config.goStackTrace: %w", err)
			}
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
			if err := in.SkipValue(); err != nil {
				return err
			}
		}
	}
}

func (g *globalConfig) validate() error {
	if g.CallStackSize < 0 {
		return fmt.Errorf("callStackSize is negative (%d)", g.CallStackSize)
	}
	if g.RegistrySize < 0 {
		return fmt.Errorf("registrySize is negative (%d)", g.RegistrySize)
	}
	for _, t := range g.PackagePath {
		if !strings.Contains(t, "?") {
			return fmt.Errorf("package path entry %q does not contain '?'", t)
		}
	}
	return nil
}

func (g *globalConfig) runtimeOptions(stdout io.Writer) *luart.Options {
	return &luart.Options{
		PackagePath:         g.PackagePath,
		CallStackSize:       g.CallStackSize,
		RegistrySize:        g.RegistrySize,
		IncludeGoStackTrace: g.GoStackTrace,
		Stdout:              stdout,
	}
}
