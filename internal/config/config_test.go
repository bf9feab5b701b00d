// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    webconfig.Options
	}{
		{
			name:  "empty document uses defaults",
			input: "",
			want:  webconfig.DefaultOptions(),
		},
		{
			name:  "partial document keeps other defaults",
			input: "includeMailSettings: false\nvaluesStyle: Tokenize\n",
			want: func() webconfig.Options {
				o := webconfig.DefaultOptions()
				o.IncludeMailSettings = false
				o.ValuesStyle = webconfig.Tokenize
				return o
			}(),
		},
		{
			name:  "style is case-insensitive",
			input: "valuesStyle: tokenize\n",
			want: func() webconfig.Options {
				o := webconfig.DefaultOptions()
				o.ValuesStyle = webconfig.Tokenize
				return o
			}(),
		},
		{
			name: "all sections off",
			input: "includeAppSettings: false\nincludeApplicationSettings: false\n" +
				"includeCompilationDebug: false\nincludeMailSettings: false\nincludeSessionStateSettings: false\n",
			want: webconfig.Options{ValuesStyle: webconfig.Literal},
		},
		{
			name:    "unknown key is rejected",
			input:   "includeEverything: true\n",
			wantErr: true,
		},
		{
			name:    "unknown style is rejected",
			input:   "valuesStyle: Redact\n",
			wantErr: true,
		},
		{
			name:    "wrong type is rejected",
			input:   "includeAppSettings: \"yes\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidOptions), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("includeAppSettings: [unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, webconfig.DefaultOptions(), opts)

	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("includeSessionStateSettings: false\n"), 0o600))
	opts, err = Load(path)
	require.NoError(t, err)
	assert.False(t, opts.IncludeSessionStateSettings)
	assert.True(t, opts.IncludeAppSettings)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
