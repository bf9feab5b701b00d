// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/webdeployproj/webdeploy-mcp/internal/tool"
	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

func newExtractCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract <web.config>",
		Short: "Print the parameter candidates found in a web.config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			settings, err := webconfig.NewPipeline(
				webconfig.WithAppSettings(opts.IncludeAppSettings),
				webconfig.WithApplicationSettings(opts.IncludeApplicationSettings),
				webconfig.WithCompilationDebug(opts.IncludeCompilationDebug),
				webconfig.WithMailSettings(opts.IncludeMailSettings),
				webconfig.WithSessionStateSettings(opts.IncludeSessionStateSettings),
				webconfig.WithValuesStyle(opts.ValuesStyle),
				webconfig.WithLogger(opts.Logger),
			).Read(args[0])
			if err != nil {
				return err
			}

			out, err := encodeSettings(settings, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	addOptionFlags(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func encodeSettings(settings []webconfig.Setting, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(settings)
	case "json":
		out, err := yaml.MarshalWithOptions(settings, yaml.JSON())
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want yaml or json)", format)
	}
}

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <web.config> <locator>",
		Short: "Print the value a setting locator addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found, err := webconfig.Resolve(args[0], args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("locator %q selects nothing in %s", args[1], args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			slog.Info("starting MCP server", slog.String("version", version))
			server := tool.NewServer(version, opts)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("mcp server stopped: %w", err)
			}
			return nil
		},
	}
	addOptionFlags(cmd.Flags())
	return cmd
}
