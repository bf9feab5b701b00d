// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

const toolWebConfig = `<configuration>
  <appSettings><add key="ApiUrl" value="http://x" /></appSettings>
  <system.web><compilation debug="false" /></system.web>
</configuration>`

func writeWebConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "web.config")
	require.NoError(t, os.WriteFile(path, []byte(toolWebConfig), 0o600))
	return path
}

func boolPtr(b bool) *bool {
	return &b
}

func TestExtractWebConfigSettings(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	path := writeWebConfig(t)

	tests := []struct {
		name           string
		base           webconfig.Options
		input          InputExtractWebConfigSettings
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputExtractWebConfigSettings)
	}{
		{
			name:        "missing path returns error",
			base:        webconfig.DefaultOptions(),
			input:       InputExtractWebConfigSettings{},
			wantErr:     true,
			errContains: "invalid input",
		},
		{
			name:        "unknown values style returns error",
			base:        webconfig.DefaultOptions(),
			input:       InputExtractWebConfigSettings{Path: path, ValuesStyle: "Redact"},
			wantErr:     true,
			errContains: "invalid input",
		},
		{
			name:  "literal extraction",
			base:  webconfig.DefaultOptions(),
			input: InputExtractWebConfigSettings{Path: path},
			validateOutput: func(t *testing.T, output OutputExtractWebConfigSettings) {
				require.Equal(t, 2, output.Count)
				assert.Equal(t, "ApiUrl", output.Settings[0].Name)
				assert.Equal(t, "http://x", output.Settings[0].Value)
				assert.Equal(t, "Compilation.Debug", output.Settings[1].Name)
				assert.Equal(t, "false", output.Settings[1].Value)
			},
		},
		{
			name:  "tokenized extraction",
			base:  webconfig.DefaultOptions(),
			input: InputExtractWebConfigSettings{Path: path, ValuesStyle: "Tokenize"},
			validateOutput: func(t *testing.T, output OutputExtractWebConfigSettings) {
				require.Equal(t, 2, output.Count)
				assert.Equal(t, "__APIURL__", output.Settings[0].Value)
				assert.Equal(t, "__COMPILATION.DEBUG__", output.Settings[1].Value)
			},
		},
		{
			name:  "input toggle overrides base",
			base:  webconfig.DefaultOptions(),
			input: InputExtractWebConfigSettings{Path: path, IncludeCompilationDebug: boolPtr(false)},
			validateOutput: func(t *testing.T, output OutputExtractWebConfigSettings) {
				require.Equal(t, 1, output.Count)
				assert.Equal(t, "ApiUrl", output.Settings[0].Name)
			},
		},
		{
			name: "base options apply when input is silent",
			base: func() webconfig.Options {
				o := webconfig.DefaultOptions()
				o.IncludeAppSettings = false
				o.ValuesStyle = webconfig.Tokenize
				return o
			}(),
			input: InputExtractWebConfigSettings{Path: path},
			validateOutput: func(t *testing.T, output OutputExtractWebConfigSettings) {
				require.Equal(t, 1, output.Count)
				assert.Equal(t, "__COMPILATION.DEBUG__", output.Settings[0].Value)
			},
		},
		{
			name:  "missing file yields empty list",
			base:  webconfig.DefaultOptions(),
			input: InputExtractWebConfigSettings{Path: filepath.Join(t.TempDir(), "none.config")},
			validateOutput: func(t *testing.T, output OutputExtractWebConfigSettings) {
				assert.Equal(t, 0, output.Count)
				assert.NotNil(t, output.Settings)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := NewExtractor(tt.base).ExtractWebConfigSettings(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestResolveLocator(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	path := writeWebConfig(t)

	_, out, err := ResolveLocator(ctx, req, InputResolveLocator{
		Path:    path,
		Locator: "/configuration/appSettings/add[@key='ApiUrl']/@value",
	})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "http://x", out.Value)

	_, out, err = ResolveLocator(ctx, req, InputResolveLocator{
		Path:    path,
		Locator: "/configuration/system.web/sessionState/@mode",
	})
	require.NoError(t, err)
	assert.False(t, out.Found)

	_, _, err = ResolveLocator(ctx, req, InputResolveLocator{Path: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
}

func TestNewServer_ListsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer("test", webconfig.DefaultOptions())
	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer clientSession.Close()

	res, err := clientSession.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"extract_web_config_settings", "resolve_locator"}, names)
}
