// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/elastic/scrollcat/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "scrollcat",
	Short: "Virtualized terminal viewer for large record streams",
	Long: `scrollcat - Scroll through synthetic records, log files or Elasticsearch
indices while only rendering the rows that are on screen.

Open the viewer with 'scrollcat ui', or inspect the window arithmetic for a
given scroll position with 'scrollcat window'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	// Global flags (Viper precedence: flags > env > config file > defaults)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (env: SCROLLCAT_CONFIG, default: ~/.config/scrollcat/config.yaml)")
	pf.Float64("item-height", config.DefaultItemHeight, "Row height in lines (env: SCROLLCAT_LAYOUT_ITEM_HEIGHT)")
	pf.Float64("viewport-height", 0, "Viewport height in lines, 0 = terminal height (env: SCROLLCAT_LAYOUT_VIEWPORT_HEIGHT)")
	pf.Int("overscan", config.DefaultOverscan, "Rows rendered beyond each viewport edge, -1 = one viewport (env: SCROLLCAT_LAYOUT_OVERSCAN)")
	pf.Int("columns", config.DefaultColumns, "Cells per row (env: SCROLLCAT_LAYOUT_COLUMNS)")
	pf.Float64("header-height", config.DefaultHeaderHeight, "Header height in lines, 0 = no header (env: SCROLLCAT_LAYOUT_HEADER_HEIGHT)")
}
