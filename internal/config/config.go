// SPDX-License-Identifier: Apache-2.0

// Package config loads extraction options from a YAML file validated
// against an embedded CUE schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

//go:embed options.cue
var optionsSchema string

// ErrInvalidOptions is returned when an options file does not match the schema.
var ErrInvalidOptions = errors.New("invalid extraction options")

// File is the decoded form of an options file.
type File struct {
	IncludeAppSettings          bool   `json:"includeAppSettings"`
	IncludeApplicationSettings  bool   `json:"includeApplicationSettings"`
	IncludeCompilationDebug     bool   `json:"includeCompilationDebug"`
	IncludeMailSettings         bool   `json:"includeMailSettings"`
	IncludeSessionStateSettings bool   `json:"includeSessionStateSettings"`
	ValuesStyle                 string `json:"valuesStyle"`
}

// Load reads the options file at path. An empty path returns the defaults.
func Load(path string) (webconfig.Options, error) {
	if path == "" {
		return webconfig.DefaultOptions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return webconfig.Options{}, fmt.Errorf("failed to read options file: %w", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return webconfig.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes and validates YAML options. Keys left out take their
// defaults; unknown keys are rejected.
func Parse(data []byte) (webconfig.Options, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return webconfig.Options{}, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(optionsSchema, cue.Filename("options.cue"))
	if err := schema.Err(); err != nil {
		return webconfig.Options{}, fmt.Errorf("failed to compile options schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Options")).Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return webconfig.Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	var f File
	if err := v.Decode(&f); err != nil {
		return webconfig.Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return f.Options()
}

// Options converts the file into pipeline options.
func (f File) Options() (webconfig.Options, error) {
	style, err := webconfig.ParseValuesStyle(f.ValuesStyle)
	if err != nil {
		return webconfig.Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return webconfig.Options{
		IncludeAppSettings:          f.IncludeAppSettings,
		IncludeApplicationSettings:  f.IncludeApplicationSettings,
		IncludeCompilationDebug:     f.IncludeCompilationDebug,
		IncludeMailSettings:         f.IncludeMailSettings,
		IncludeSessionStateSettings: f.IncludeSessionStateSettings,
		ValuesStyle:                 style,
	}, nil
}
