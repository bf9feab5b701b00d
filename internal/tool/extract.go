// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// MetadataExtractWebConfigSettings describes the extract_web_config_settings tool.
var MetadataExtractWebConfigSettings = &mcp.Tool{
	Name: "extract_web_config_settings",
	Description: "Scan an ASP.NET web.config and return the deployment parameter candidates it defines. " +
		"Sections: appSettings, applicationSettings (string members only), system.web/compilation debug, " +
		"system.net/mailSettings/smtp and system.web/sessionState. " +
		"Each setting has a unique name, an absolute XPath locator into the document and a value. " +
		"With values_style Tokenize every value is replaced by __NAME__. " +
		"A missing file yields an empty list.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"path"},
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the web.config file on the local file system",
			},
			"include_app_settings":           boolProperty("Extract appSettings entries (default true)"),
			"include_application_settings":   boolProperty("Extract applicationSettings members (default true)"),
			"include_compilation_debug":      boolProperty("Extract the compilation debug flag (default true)"),
			"include_mail_settings":          boolProperty("Extract SMTP host and delivery method (default true)"),
			"include_session_state_settings": boolProperty("Extract session state mode and connection string (default true)"),
			"values_style": map[string]interface{}{
				"type":        "string",
				"description": "Literal copies values from the document; Tokenize emits __NAME__ placeholders. Defaults to Literal.",
				"enum":        []string{"Literal", "Tokenize"},
			},
		},
	},
}

func boolProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
	}
}

// InputExtractWebConfigSettings is the input for the ExtractWebConfigSettings tool.
type InputExtractWebConfigSettings struct {
	Path                        string `json:"path" validate:"required"`
	IncludeAppSettings          *bool  `json:"include_app_settings,omitempty"`
	IncludeApplicationSettings  *bool  `json:"include_application_settings,omitempty"`
	IncludeCompilationDebug     *bool  `json:"include_compilation_debug,omitempty"`
	IncludeMailSettings         *bool  `json:"include_mail_settings,omitempty"`
	IncludeSessionStateSettings *bool  `json:"include_session_state_settings,omitempty"`
	ValuesStyle                 string `json:"values_style,omitempty" validate:"omitempty,oneof=Literal Tokenize"`
}

// OutputExtractWebConfigSettings is the output for the ExtractWebConfigSettings tool.
type OutputExtractWebConfigSettings struct {
	// Settings is the ordered list of parameter candidates.
	Settings []webconfig.Setting `json:"settings"`
	Count    int                 `json:"count"`
}

// options overlays the toggles the caller set on base.
func (in InputExtractWebConfigSettings) options(base webconfig.Options) ([]webconfig.Option, error) {
	opts := []webconfig.Option{
		webconfig.WithAppSettings(base.IncludeAppSettings),
		webconfig.WithApplicationSettings(base.IncludeApplicationSettings),
		webconfig.WithCompilationDebug(base.IncludeCompilationDebug),
		webconfig.WithMailSettings(base.IncludeMailSettings),
		webconfig.WithSessionStateSettings(base.IncludeSessionStateSettings),
		webconfig.WithValuesStyle(base.ValuesStyle),
		webconfig.WithLogger(base.Logger),
	}
	toggles := []struct {
		set *bool
		fn  func(bool) webconfig.Option
	}{
		{in.IncludeAppSettings, webconfig.WithAppSettings},
		{in.IncludeApplicationSettings, webconfig.WithApplicationSettings},
		{in.IncludeCompilationDebug, webconfig.WithCompilationDebug},
		{in.IncludeMailSettings, webconfig.WithMailSettings},
		{in.IncludeSessionStateSettings, webconfig.WithSessionStateSettings},
	}
	for _, t := range toggles {
		if t.set != nil {
			opts = append(opts, t.fn(*t.set))
		}
	}
	if in.ValuesStyle != "" {
		style, err := webconfig.ParseValuesStyle(in.ValuesStyle)
		if err != nil {
			return nil, err
		}
		opts = append(opts, webconfig.WithValuesStyle(style))
	}
	return opts, nil
}

// Extractor serves the extraction tools with a set of base options that
// per-call input may override.
type Extractor struct {
	base webconfig.Options
}

// NewExtractor creates an Extractor whose calls start from base.
func NewExtractor(base webconfig.Options) *Extractor {
	return &Extractor{base: base}
}

// ExtractWebConfigSettings runs the extraction pipeline over the requested file.
func (e *Extractor) ExtractWebConfigSettings(_ context.Context, _ *mcp.CallToolRequest, input InputExtractWebConfigSettings) (*mcp.CallToolResult, OutputExtractWebConfigSettings, error) {
	if err := validate.Struct(input); err != nil {
		return nil, OutputExtractWebConfigSettings{}, fmt.Errorf("invalid input: %w", err)
	}

	opts, err := input.options(e.base)
	if err != nil {
		return nil, OutputExtractWebConfigSettings{}, err
	}

	settings, err := webconfig.Read(input.Path, opts...)
	if err != nil {
		return nil, OutputExtractWebConfigSettings{}, err
	}

	return nil, OutputExtractWebConfigSettings{
		Settings: settings,
		Count:    len(settings),
	}, nil
}
