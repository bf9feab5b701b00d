// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

// MetadataResolveLocator describes the resolve_locator tool.
var MetadataResolveLocator = &mcp.Tool{
	Name: "resolve_locator",
	Description: "Evaluate a setting locator (an absolute XPath expression such as " +
		"/configuration/appSettings/add[@key='ApiUrl']/@value) against a web.config and return " +
		"the value currently stored there. found is false when the locator selects nothing.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"path", "locator"},
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the web.config file on the local file system",
			},
			"locator": map[string]interface{}{
				"type":        "string",
				"description": "Locator returned by extract_web_config_settings",
			},
		},
	},
}

// InputResolveLocator is the input for the ResolveLocator tool.
type InputResolveLocator struct {
	Path    string `json:"path" validate:"required"`
	Locator string `json:"locator" validate:"required"`
}

// OutputResolveLocator is the output for the ResolveLocator tool.
type OutputResolveLocator struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// ResolveLocator reads the value a locator addresses.
func ResolveLocator(_ context.Context, _ *mcp.CallToolRequest, input InputResolveLocator) (*mcp.CallToolResult, OutputResolveLocator, error) {
	if err := validate.Struct(input); err != nil {
		return nil, OutputResolveLocator{}, fmt.Errorf("invalid input: %w", err)
	}

	value, found, err := webconfig.Resolve(input.Path, input.Locator)
	if err != nil {
		return nil, OutputResolveLocator{}, err
	}
	return nil, OutputResolveLocator{Value: value, Found: found}, nil
}
