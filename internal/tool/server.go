// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

const serverName = "webdeploy-mcp"

// NewServer builds an MCP server exposing the web.config tools. base holds
// the extraction defaults that tool input can override.
func NewServer(version string, base webconfig.Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)

	extractor := NewExtractor(base)
	mcp.AddTool(server, MetadataExtractWebConfigSettings, extractor.ExtractWebConfigSettings)
	mcp.AddTool(server, MetadataResolveLocator, ResolveLocator)
	return server
}
