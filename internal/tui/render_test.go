// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/elastic/scrollcat/internal/feed"
)

func viewLines(m Model) []string {
	return strings.Split(m.View(), "\n")
}

func TestViewShowsRowsAtOffset(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(100), 100, flatLayout())
	m = load(t, m)

	lines := viewLines(m)
	if len(lines) != 12 {
		t.Fatalf("view has %d lines, want 12", len(lines))
	}
	if !strings.Contains(lines[0], "#0 handled request") {
		t.Fatalf("first line = %q, want row #0", lines[0])
	}

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "j")
	}
	lines = viewLines(m)
	if !strings.Contains(lines[0], "#5 ") {
		t.Fatalf("first line after scrolling = %q, want row #5", lines[0])
	}
	if !strings.Contains(lines[9], "#14 ") {
		t.Fatalf("last list line = %q, want row #14", lines[9])
	}
}

func TestViewHeaderScrollsAway(t *testing.T) {
	t.Parallel()

	layout := flatLayout()
	layout.HeaderHeight = 3
	m := newTestModel(t, feed.NewSynthetic(100), 100, layout)
	m = load(t, m)

	lines := viewLines(m)
	if !strings.Contains(lines[0], "scrollcat") || !strings.Contains(lines[0], "[ synthetic ]") {
		t.Fatalf("title line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "TIME") {
		t.Fatalf("label line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "#0 ") {
		t.Fatalf("first data row should sit below the header, got %q", lines[3])
	}

	m, _ = press(t, m, "j")
	lines = viewLines(m)
	if !strings.Contains(lines[0], "TIME") || !strings.Contains(lines[2], "#0 ") {
		t.Fatalf("header should move up one line, got %q / %q", lines[0], lines[2])
	}

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	lines = viewLines(m)
	if !strings.Contains(lines[0], "#0 ") {
		t.Fatalf("header should be gone at offset 3, got %q", lines[0])
	}
	for _, l := range lines[:10] {
		if strings.Contains(l, "scrollcat") {
			t.Fatalf("title still visible: %q", l)
		}
	}
}

func TestViewColumnsShareRowBase(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(100), 100, flatLayout())
	m = load(t, m)
	m, _ = press(t, m, "c")

	lines := viewLines(m)
	if !strings.Contains(lines[0], "#0 ") || !strings.Contains(lines[0], "#1 ") {
		t.Fatalf("row 0 = %q, want items 0 and 1", lines[0])
	}
	if !strings.Contains(lines[1], "#1 ") || !strings.Contains(lines[1], "#2 ") {
		t.Fatalf("row 1 = %q, want items 1 and 2", lines[1])
	}
}

func TestViewTallItems(t *testing.T) {
	t.Parallel()

	layout := flatLayout()
	layout.ItemHeight = 2
	m := newTestModel(t, feed.NewSynthetic(100), 100, layout)
	m = load(t, m)

	lines := viewLines(m)
	if !strings.Contains(lines[0], "#0 handled request") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "#0 synthetic") {
		t.Fatalf("line 1 = %q, want the source line", lines[1])
	}
	if !strings.Contains(lines[2], "#1 ") {
		t.Fatalf("line 2 = %q, want row #1", lines[2])
	}
}

func TestViewEmptySource(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(0), 10, flatLayout())
	m = load(t, m)

	if !strings.Contains(m.View(), "No records") {
		t.Fatalf("empty view should say so")
	}
}

func TestViewStatusBar(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(100), 100, flatLayout())
	m = load(t, m)

	status := m.renderStatusBar()
	for _, want := range []string{"Src: synthetic", "of 100/100", "Cols: 1"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status bar %q missing %q", status, want)
		}
	}

	m.setStatus("hello")
	if !strings.Contains(m.renderStatusBar(), "hello") {
		t.Fatalf("status message not shown")
	}
}

func TestViewOverlays(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(10), 10, flatLayout())

	jump, _ := press(t, m, ":")
	if !strings.Contains(jump.View(), "Jump to row") {
		t.Fatalf("jump prompt not shown")
	}

	help, _ := press(t, m, "?")
	if !strings.Contains(help.View(), "Scroll") {
		t.Fatalf("help overlay not shown")
	}
	content := help.renderHelpContent()
	for _, want := range []string{"Scroll", "jump to row", "Layout", "Clipboard", "System"} {
		if !strings.Contains(content, want) {
			t.Fatalf("help content missing %q", want)
		}
	}

	back, _ := press(t, help, "esc")
	if back.mode != modeList {
		t.Fatalf("esc should close help")
	}
}

func TestFitLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "pads", in: "ab", width: 4, want: "ab  "},
		{name: "truncates", in: "abcdef", width: 4, want: "abc…"},
		{name: "exact", in: "abcd", width: 4, want: "abcd"},
		{name: "zero width", in: "abc", width: 0, want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := fitLine(tc.in, tc.width); got != tc.want {
				t.Fatalf("fitLine(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}
