// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"errors"
	"log/slog"
)

// rootElement is the only document root extraction runs against.
const rootElement = "configuration"

// Pipeline runs the section extractors over one document in a fixed order.
type Pipeline struct {
	opts     Options
	sections []SectionExtractor
}

// NewPipeline creates a Pipeline with the default section order:
// appSettings, applicationSettings, compilation, mail, session state.
// appSettings and applicationSettings run back to back so that
// application setting names are disambiguated against app setting keys.
func NewPipeline(opts ...Option) *Pipeline {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		opts: o,
		sections: []SectionExtractor{
			NewAppSettingsExtractor(),
			NewApplicationSettingsExtractor(),
			NewCompilationDebugExtractor(),
			NewMailSettingsExtractor(),
			NewSessionStateExtractor(),
		},
	}
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Read loads the document at path and extracts its settings. A missing file
// yields an empty list; malformed XML yields a *ParseError.
func (p *Pipeline) Read(path string) ([]Setting, error) {
	doc, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		p.opts.logger().Debug("web.config not found, nothing to extract", slog.String("path", path))
		return []Setting{}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.Extract(doc), nil
}

// Extract runs every enabled section extractor over doc. The accumulator is
// local to the call, so repeated runs never see each other's names.
func (p *Pipeline) Extract(doc *Document) []Setting {
	results := []Setting{}
	if doc == nil || doc.Root == nil || doc.Root.Name != rootElement {
		return results
	}

	log := p.opts.logger()
	for _, section := range p.sections {
		if !section.Enabled(p.opts) {
			continue
		}
		before := len(results)
		results = section.Extract(doc.Root, p.opts, results)
		log.Debug("extracted section",
			slog.String("section", section.Name()),
			slog.Int("settings", len(results)-before))
	}
	return results
}

// RegisteredSections returns the names of the section extractors in run order.
func (p *Pipeline) RegisteredSections() []string {
	names := make([]string, len(p.sections))
	for i, s := range p.sections {
		names[i] = s.Name()
	}
	return names
}

// Read extracts settings from the web.config at path with the given options.
func Read(path string, opts ...Option) ([]Setting, error) {
	return NewPipeline(opts...).Read(path)
}
