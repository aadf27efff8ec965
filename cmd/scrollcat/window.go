// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/elastic/scrollcat/internal/config"
	"github.com/elastic/scrollcat/internal/vscroll"
)

var (
	windowOffset   float64
	windowItems    int
	windowOutput   string
	windowNoCells  bool
	windowPrevious float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the window and cells for a scroll position",
	Long: `Computes which rows a virtualized list would render at --offset for a list
of --items records, using the layout from config, env and flags.

Examples:
  scrollcat window --items 10000 --offset 5230
  scrollcat window --items 500 --offset 40 --columns 3 -o json
  scrollcat window --items 500 --offset 120 --from 100 -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := config.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("configuration not loaded")
		}
		layout := cfg.Layout
		if layout.ViewportHeight <= 0 {
			_, h := terminalSize()
			layout.ViewportHeight = float64(h)
		}
		report, err := buildReport(layout, windowItems, windowPrevious, windowOffset, !windowNoCells)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, windowOutput)
	},
}

func init() {
	f := windowCmd.Flags()
	f.Float64Var(&windowOffset, "offset", 0, "Scroll offset in lines")
	f.Float64Var(&windowPrevious, "from", 0, "Previous scroll offset, used for direction and load-more")
	f.IntVar(&windowItems, "items", 100, "Number of data records")
	f.StringVarP(&windowOutput, "output", "o", "table", "Output format: table, json, yaml")
	f.BoolVar(&windowNoCells, "no-cells", false, "Omit the cell list")
	rootCmd.AddCommand(windowCmd)
}

// windowReport is everything computed for one scroll position.
type windowReport struct {
	Layout          vscroll.LayoutConfig `json:"layout" yaml:"layout"`
	Window          vscroll.Window       `json:"window" yaml:"window"`
	ContentHeight   float64              `json:"content_height" yaml:"content_height"`
	MaxScroll       float64              `json:"max_scroll" yaml:"max_scroll"`
	HeaderTranslate float64              `json:"header_translate" yaml:"header_translate"`
	Direction       string               `json:"direction" yaml:"direction"`
	ShouldLoadMore  bool                 `json:"should_load_more" yaml:"should_load_more"`
	Cells           []vscroll.Cell       `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// buildReport runs the tracker from previous to offset and computes the
// window at offset.
func buildReport(layout config.LayoutConfig, items int, previous, offset float64, withCells bool) (windowReport, error) {
	cfg := vscroll.LayoutConfig{
		ItemHeight:     layout.ItemHeight,
		ViewportHeight: layout.ViewportHeight,
		ColumnCount:    layout.Columns,
		ItemCount:      items,
		HeaderHeight:   layout.HeaderHeight,
	}
	if n := layout.OverscanCount(); n != nil {
		cfg.OverscanCount = *n
	} else {
		cfg.OverscanCount = vscroll.DefaultOverscan(cfg.ItemHeight, cfg.ViewportHeight)
	}
	if err := cfg.Validate(); err != nil {
		return windowReport{}, err
	}

	tracker := vscroll.NewTracker()
	sample := vscroll.ScrollSample{ContentHeight: cfg.ContentHeight(), ViewportHeight: cfg.ViewportHeight}
	sample.OffsetY = previous
	tracker.Update(sample)
	sample.OffsetY = offset
	u := tracker.Update(sample)

	w := vscroll.Compute(cfg, offset)
	r := windowReport{
		Layout:          cfg,
		Window:          w,
		ContentHeight:   cfg.ContentHeight(),
		MaxScroll:       cfg.MaxScroll(),
		HeaderTranslate: vscroll.HeaderTranslate(offset, cfg.HeaderHeight),
		Direction:       u.Direction.String(),
		ShouldLoadMore:  u.ShouldLoadMore,
	}
	if withCells {
		r.Cells = vscroll.Cells(cfg, w, items)
	}
	return r, nil
}

func writeReport(w io.Writer, r windowReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		return writeTable(w, r)
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, yaml)", format)
	}
}

func writeTable(w io.Writer, r windowReport) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	summary := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("START", "END", "PIXEL OFFSET", "CONTENT", "MAX SCROLL", "HEADER Y", "DIRECTION", "LOAD MORE").
		Row(
			strconv.Itoa(r.Window.StartIndex),
			strconv.Itoa(r.Window.EndIndex),
			f(r.Window.PixelOffset),
			f(r.ContentHeight),
			f(r.MaxScroll),
			f(r.HeaderTranslate),
			r.Direction,
			strconv.FormatBool(r.ShouldLoadMore),
		)
	if _, err := fmt.Fprintln(w, summary.String()); err != nil {
		return err
	}
	if len(r.Cells) == 0 {
		return nil
	}

	cells := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ROW", "COLUMN", "INDEX", "DATA")
	for _, c := range r.Cells {
		data := strconv.Itoa(c.DataIndex)
		if c.Spacer {
			data = "header"
		}
		cells.Row(strconv.Itoa(c.Row), strconv.Itoa(c.Column), strconv.Itoa(c.Index), data)
	}
	_, err := fmt.Fprintln(w, cells.String())
	return err
}
