// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"fmt"
	"log/slog"
	"strings"
)

// Setting is one deployment parameter candidate extracted from a web.config.
type Setting struct {
	// Name is the public parameter identifier.
	Name string `json:"name" yaml:"name"`
	// Locator is an absolute XPath expression addressing the attribute or
	// text node the value was read from.
	Locator string `json:"locator" yaml:"locator"`
	Value   string `json:"value" yaml:"value"`
}

// ValuesStyle selects how setting values are emitted.
type ValuesStyle int

const (
	// Literal copies the value found in the document.
	Literal ValuesStyle = iota
	// Tokenize replaces every value with a placeholder derived from the name.
	Tokenize
)

func (s ValuesStyle) String() string {
	switch s {
	case Literal:
		return "Literal"
	case Tokenize:
		return "Tokenize"
	default:
		return fmt.Sprintf("ValuesStyle(%d)", int(s))
	}
}

// ParseValuesStyle parses a style name case-insensitively.
func ParseValuesStyle(s string) (ValuesStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "literal", "":
		return Literal, nil
	case "tokenize":
		return Tokenize, nil
	default:
		return Literal, fmt.Errorf("unknown values style %q (want Literal or Tokenize)", s)
	}
}

// Token returns the placeholder used for name when values are tokenized.
func Token(name string) string {
	return "__" + strings.ToUpper(name) + "__"
}

// Options toggles the section extractors and selects the values style.
type Options struct {
	IncludeAppSettings          bool
	IncludeApplicationSettings  bool
	IncludeCompilationDebug     bool
	IncludeMailSettings         bool
	IncludeSessionStateSettings bool
	ValuesStyle                 ValuesStyle
	Logger                      *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions enables every section and keeps literal values.
func DefaultOptions() Options {
	return Options{
		IncludeAppSettings:          true,
		IncludeApplicationSettings:  true,
		IncludeCompilationDebug:     true,
		IncludeMailSettings:         true,
		IncludeSessionStateSettings: true,
		ValuesStyle:                 Literal,
	}
}

// WithAppSettings toggles the appSettings extractor.
func WithAppSettings(on bool) Option {
	return func(o *Options) { o.IncludeAppSettings = on }
}

// WithApplicationSettings toggles the applicationSettings extractor.
func WithApplicationSettings(on bool) Option {
	return func(o *Options) { o.IncludeApplicationSettings = on }
}

// WithCompilationDebug toggles the compilation debug extractor.
func WithCompilationDebug(on bool) Option {
	return func(o *Options) { o.IncludeCompilationDebug = on }
}

// WithMailSettings toggles the SMTP settings extractor.
func WithMailSettings(on bool) Option {
	return func(o *Options) { o.IncludeMailSettings = on }
}

// WithSessionStateSettings toggles the session state extractor.
func WithSessionStateSettings(on bool) Option {
	return func(o *Options) { o.IncludeSessionStateSettings = on }
}

// WithValuesStyle selects literal or tokenized values.
func WithValuesStyle(style ValuesStyle) Option {
	return func(o *Options) { o.ValuesStyle = style }
}

// WithLogger sets the logger used for debug output. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// valueFor applies the values style. read is only called for Literal.
func (o Options) valueFor(name string, read func() string) string {
	if o.ValuesStyle == Tokenize {
		return Token(name)
	}
	return read()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
