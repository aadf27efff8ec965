// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/elastic/scrollcat/internal/config"
)

func testLayout() config.LayoutConfig {
	return config.LayoutConfig{ItemHeight: 50, ViewportHeight: 500, Overscan: 5, Columns: 1}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		layout       func() config.LayoutConfig
		items        int
		from, offset float64
		wantStart    int
		wantEnd      int
		wantPixel    float64
		wantDir      string
		wantLoad     bool
	}{
		{
			name:      "top of list",
			layout:    testLayout,
			items:     1000,
			wantStart: 0, wantEnd: 20, wantPixel: 0,
			wantDir: "up",
		},
		{
			name:      "mid list scrolling down",
			layout:    testLayout,
			items:     1000,
			from:      0,
			offset:    1000,
			wantStart: 20, wantEnd: 40, wantPixel: 1000,
			wantDir: "down",
		},
		{
			name:      "near end loads more",
			layout:    testLayout,
			items:     100,
			from:      2000,
			offset:    2500,
			wantStart: 50, wantEnd: 70, wantPixel: 2500,
			wantDir: "down", wantLoad: true,
		},
		{
			name: "header slots",
			layout: func() config.LayoutConfig {
				l := testLayout()
				l.HeaderHeight = 120
				return l
			},
			items:     10,
			from:      50,
			offset:    0,
			wantStart: 0, wantEnd: 13, wantPixel: 0,
			wantDir: "up",
		},
		{
			name: "derived overscan",
			layout: func() config.LayoutConfig {
				l := testLayout()
				l.Overscan = -1
				return l
			},
			items:     1000,
			offset:    500,
			wantStart: 10, wantEnd: 40, wantPixel: 500,
			wantDir: "down",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := buildReport(tc.layout(), tc.items, tc.from, tc.offset, true)
			if err != nil {
				t.Fatalf("buildReport: %v", err)
			}
			if r.Window.StartIndex != tc.wantStart || r.Window.EndIndex != tc.wantEnd || r.Window.PixelOffset != tc.wantPixel {
				t.Fatalf("window = %+v, want [%d,%d) @%v", r.Window, tc.wantStart, tc.wantEnd, tc.wantPixel)
			}
			if r.Direction != tc.wantDir || r.ShouldLoadMore != tc.wantLoad {
				t.Fatalf("direction/load = %s/%v, want %s/%v", r.Direction, r.ShouldLoadMore, tc.wantDir, tc.wantLoad)
			}
		})
	}
}

func TestBuildReportRejectsBadLayout(t *testing.T) {
	t.Parallel()

	l := testLayout()
	l.ItemHeight = 0
	if _, err := buildReport(l, 10, 0, 0, true); err == nil {
		t.Fatalf("expected error for zero item height")
	}
}

func TestBuildReportHugeOffset(t *testing.T) {
	t.Parallel()

	for _, offset := range []float64{1e300, math.Inf(1)} {
		r, err := buildReport(testLayout(), 100, 0, offset, true)
		if err != nil {
			t.Fatalf("buildReport(%v): %v", offset, err)
		}
		if r.Window.StartIndex != 100 || r.Window.EndIndex != 100 || len(r.Cells) != 0 {
			t.Fatalf("offset %v: window %+v with %d cells, want empty window at 100", offset, r.Window, len(r.Cells))
		}
		var buf bytes.Buffer
		if err := writeReport(&buf, r, "json"); err != nil {
			t.Fatalf("offset %v: json output: %v", offset, err)
		}
	}
}

func TestBuildReportHeaderCells(t *testing.T) {
	t.Parallel()

	l := testLayout()
	l.HeaderHeight = 100
	r, err := buildReport(l, 3, 0, 0, true)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	// Two header spacers then the three data rows
	if len(r.Cells) != 5 {
		t.Fatalf("got %d cells, want 5: %+v", len(r.Cells), r.Cells)
	}
	if !r.Cells[0].Spacer || !r.Cells[1].Spacer || r.Cells[2].DataIndex != 0 {
		t.Fatalf("unexpected cells %+v", r.Cells)
	}
	if r.HeaderTranslate != 0 {
		t.Fatalf("header translate at top = %v, want 0", r.HeaderTranslate)
	}
}

func TestWriteReportFormats(t *testing.T) {
	t.Parallel()

	r, err := buildReport(testLayout(), 100, 0, 250, true)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := writeReport(&buf, r, "json"); err != nil {
			t.Fatalf("writeReport: %v", err)
		}
		var got windowReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got.Window != r.Window || len(got.Cells) != len(r.Cells) {
			t.Fatalf("json report = %+v", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := writeReport(&buf, r, "yaml"); err != nil {
			t.Fatalf("writeReport: %v", err)
		}
		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid yaml: %v", err)
		}
		if !strings.Contains(buf.String(), "start_index: 5") {
			t.Fatalf("yaml missing window:\n%s", buf.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := writeReport(&buf, r, "table"); err != nil {
			t.Fatalf("writeReport: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"START", "LOAD MORE", "ROW", "DATA"} {
			if !strings.Contains(out, want) {
				t.Fatalf("table missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		if err := writeReport(&bytes.Buffer{}, r, "xml"); err == nil {
			t.Fatalf("expected error for unknown format")
		}
	})
}

func TestWindowCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SCROLLCAT_CONFIG", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"window", "--items", "10", "--offset", "3", "--viewport-height", "4", "--header-height", "0", "-o", "json"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}

	var got windowReport
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	// Overscan defaults to one viewport: 4 visible + 2*4
	if got.Window.StartIndex != 3 || got.Window.EndIndex != 10 {
		t.Fatalf("window = %+v, want [3,10)", got.Window)
	}
	if got.Layout.ViewportHeight != 4 || got.Layout.OverscanCount != 4 {
		t.Fatalf("layout = %+v", got.Layout)
	}
}
