// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/webdeployproj/webdeploy-mcp/internal/config"
	"github.com/webdeployproj/webdeploy-mcp/internal/webconfig"
)

const envPrefix = "WDP"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "webdeploy-mcp",
		Short:         "Extract Web Deploy parameter candidates from web.config files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return err
			}
			setupLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "extraction options file (YAML)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newExtractCommand(),
		newResolveCommand(),
		newServeCommand(),
	)
	return root
}

// newViper layers WDP_* environment variables over the given flags.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

// addOptionFlags registers the extraction toggles on flags.
func addOptionFlags(flags *pflag.FlagSet) {
	defaults := webconfig.DefaultOptions()
	flags.Bool("app-settings", defaults.IncludeAppSettings, "extract appSettings entries")
	flags.Bool("application-settings", defaults.IncludeApplicationSettings, "extract applicationSettings string members")
	flags.Bool("compilation-debug", defaults.IncludeCompilationDebug, "extract system.web/compilation debug")
	flags.Bool("mail-settings", defaults.IncludeMailSettings, "extract SMTP host and delivery method")
	flags.Bool("session-state", defaults.IncludeSessionStateSettings, "extract session state mode and connection string")
	flags.String("values-style", defaults.ValuesStyle.String(), "Literal or Tokenize")
}

// loadOptions merges, lowest first: defaults, the options file, WDP_*
// environment variables and flags set on the command line.
func loadOptions(cmd *cobra.Command) (webconfig.Options, error) {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return webconfig.Options{}, err
	}

	opts, err := config.Load(v.GetString("config"))
	if err != nil {
		return webconfig.Options{}, err
	}

	toggles := []struct {
		key string
		dst *bool
	}{
		{"app-settings", &opts.IncludeAppSettings},
		{"application-settings", &opts.IncludeApplicationSettings},
		{"compilation-debug", &opts.IncludeCompilationDebug},
		{"mail-settings", &opts.IncludeMailSettings},
		{"session-state", &opts.IncludeSessionStateSettings},
	}
	for _, t := range toggles {
		if v.IsSet(t.key) {
			*t.dst = v.GetBool(t.key)
		}
	}
	if v.IsSet("values-style") {
		style, err := webconfig.ParseValuesStyle(v.GetString("values-style"))
		if err != nil {
			return webconfig.Options{}, err
		}
		opts.ValuesStyle = style
	}

	opts.Logger = slog.Default()
	return opts, nil
}
