// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elastic/scrollcat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect scrollcat configuration",
	Long: `Inspect the effective scrollcat configuration.

Configuration is read from ~/.config/scrollcat/config.yaml (or --config),
overridden by SCROLLCAT_* environment variables and command line flags.
The layout section is reloaded while the viewer is running.`,
}

var viewConfigCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the effective configuration (credentials masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := config.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("configuration not loaded")
		}

		out := cmd.OutOrStdout()
		if cfg.File != "" {
			fmt.Fprintf(out, "# %s\n", cfg.File)
		} else {
			fmt.Fprintln(out, "# no config file, defaults and environment only")
		}
		fmt.Fprintln(out, cfg.String())

		if warning := cfg.PermissionWarning(); warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr())
			fmt.Fprintln(cmd.ErrOrStderr(), warning)
		}
		return nil
	},
}

var pathConfigCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(viewConfigCmd)
	configCmd.AddCommand(pathConfigCmd)
	rootCmd.AddCommand(configCmd)
}
