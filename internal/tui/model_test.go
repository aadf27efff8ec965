// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/scrollcat/internal/config"
	"github.com/elastic/scrollcat/internal/feed"
)

func flatLayout() config.LayoutConfig {
	return config.LayoutConfig{ItemHeight: 1, Overscan: -1, Columns: 1}
}

func newTestModel(t *testing.T, src feed.Source, pageSize int, layout config.LayoutConfig) Model {
	t.Helper()

	cfg := config.Config{
		Layout: layout,
		TUI:    config.TUIConfig{WheelStep: 3, StatusTimeout: time.Minute},
	}
	m := NewModel(Options{
		Context: context.Background(),
		Config:  cfg,
		Pager:   feed.NewPager(src, pageSize),
		Width:   80,
		Height:  12,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	return next.(Model)
}

// runPages executes page loads until the model stops asking for more.
func runPages(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatalf("page loads did not settle")
		}
		msg, ok := cmd().(pageMsg)
		if !ok {
			t.Fatalf("expected pageMsg from load command")
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	return runPages(t, m, m.loadMore())
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelLoadsUntilViewportIsFilled(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(1000), 4, flatLayout())
	m = load(t, m)

	// 10 list lines: pages of 4 continue until content exceeds the viewport
	if got := m.surface.Len(); got != 12 {
		t.Fatalf("loaded %d items, want 12", got)
	}
	if m.underfilled() {
		t.Fatalf("viewport should be filled after initial loads")
	}
}

func TestScrollKeysClampAndLoadMore(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(1000), 50, flatLayout())
	m = load(t, m)
	if m.surface.Len() != 50 {
		t.Fatalf("loaded %d items, want 50", m.surface.Len())
	}

	m, cmd := press(t, m, "k")
	if m.surface.Offset() != 0 || cmd != nil {
		t.Fatalf("scrolling up at the top should stay at 0 without loading, offset=%v", m.surface.Offset())
	}

	m, cmd = press(t, m, "j")
	if m.surface.Offset() != 1 {
		t.Fatalf("offset after j = %v, want 1", m.surface.Offset())
	}
	if cmd == nil {
		t.Fatalf("scrolling down past the threshold should request a page")
	}
	m = runPages(t, m, cmd)
	if m.surface.Len() != 100 {
		t.Fatalf("loaded %d items after load more, want 100", m.surface.Len())
	}

	m, cmd = press(t, m, "G")
	if m.surface.Offset() != 90 {
		t.Fatalf("offset after G = %v, want 90", m.surface.Offset())
	}
	m = runPages(t, m, cmd)
	if m.surface.Len() != 150 {
		t.Fatalf("loaded %d items after G, want 150", m.surface.Len())
	}

	m, cmd = press(t, m, "g")
	if m.surface.Offset() != 0 || cmd != nil {
		t.Fatalf("g should scroll to top without loading, offset=%v", m.surface.Offset())
	}
	if dir := m.surface.State().Direction.String(); dir != "up" {
		t.Fatalf("direction = %s, want up", dir)
	}
}

func TestNoLoadAfterSourceIsExhausted(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(30), 50, flatLayout())
	m = load(t, m)
	if !m.pager.Status().Done {
		t.Fatalf("pager should be done after a short page")
	}

	m, cmd := press(t, m, "G")
	if cmd != nil {
		t.Fatalf("no load should start once the source is exhausted")
	}
	if m.surface.Offset() != 20 {
		t.Fatalf("offset = %v, want 20", m.surface.Offset())
	}
}

func TestWheelScrollsByStep(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(100), 100, flatLayout())
	m = load(t, m)

	next, _ := m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	m = next.(Model)
	if m.surface.Offset() != 3 {
		t.Fatalf("offset after wheel down = %v, want 3", m.surface.Offset())
	}

	next, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m = next.(Model)
	if m.surface.Offset() != 0 {
		t.Fatalf("offset after wheel up = %v, want 0", m.surface.Offset())
	}
}

func TestColumnsCycle(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(10), 10, flatLayout())
	for _, want := range []int{2, 3, 4, 1} {
		m, _ = press(t, m, "c")
		if got := m.surface.Config().ColumnCount; got != want {
			t.Fatalf("columns = %d, want %d", got, want)
		}
	}
}

func TestHeaderToggle(t *testing.T) {
	t.Parallel()

	layout := flatLayout()
	layout.HeaderHeight = 3
	m := newTestModel(t, feed.NewSynthetic(10), 10, layout)
	if !m.surface.HasHeader() || m.surface.Config().HeaderSlots() != 3 {
		t.Fatalf("header should reserve 3 slots")
	}

	m, _ = press(t, m, "h")
	if m.surface.HasHeader() || m.surface.Config().HeaderSlots() != 0 {
		t.Fatalf("header should be hidden after toggle")
	}

	m, _ = press(t, m, "h")
	if !m.surface.HasHeader() {
		t.Fatalf("header should be back after second toggle")
	}

	plain := newTestModel(t, feed.NewSynthetic(10), 10, flatLayout())
	plain, _ = press(t, plain, "h")
	if plain.surface.HasHeader() || !strings.Contains(plain.statusMessage, "No header") {
		t.Fatalf("toggle without a configured header should only set a status, got %q", plain.statusMessage)
	}
}

func TestJumpToRow(t *testing.T) {
	t.Parallel()

	layout := flatLayout()
	layout.HeaderHeight = 3
	m := newTestModel(t, feed.NewSynthetic(100), 100, layout)
	m = load(t, m)

	m, _ = press(t, m, ":")
	if m.mode != modeJump {
		t.Fatalf("mode = %v, want jump", m.mode)
	}
	m, _ = press(t, m, "4")
	m, _ = press(t, m, "2")
	m, _ = press(t, m, "enter")

	if m.mode != modeList {
		t.Fatalf("enter should return to the list")
	}
	if m.surface.Offset() != 45 {
		t.Fatalf("offset = %v, want 45", m.surface.Offset())
	}
	item, ok := m.firstVisibleItem()
	if !ok || !strings.HasPrefix(item.Message, "#42 ") {
		t.Fatalf("first visible item = %+v, want #42", item)
	}

	m, _ = press(t, m, ":")
	m, _ = press(t, m, "x")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.statusMessage, "Not a row number") {
		t.Fatalf("status = %q, want row number error", m.statusMessage)
	}
	if m.surface.Offset() != 45 {
		t.Fatalf("invalid jump must not move, offset = %v", m.surface.Offset())
	}
}

type flakySource struct {
	fail bool
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Fetch(ctx context.Context, offset, limit int) (feed.Page, error) {
	if s.fail {
		return feed.Page{}, errors.New("cluster unavailable")
	}
	return feed.NewSynthetic(limit*3).Fetch(ctx, offset, limit)
}

func TestPageErrorAndRetry(t *testing.T) {
	t.Parallel()

	src := &flakySource{fail: true}
	m := newTestModel(t, src, 20, flatLayout())
	m = load(t, m)

	if m.err == nil || m.surface.Len() != 0 {
		t.Fatalf("expected error without items, err=%v len=%d", m.err, m.surface.Len())
	}
	if !strings.Contains(m.View(), "r to retry") {
		t.Fatalf("view should offer a retry")
	}

	src.fail = false
	m, cmd := press(t, m, "r")
	if cmd == nil {
		t.Fatalf("retry should start a load")
	}
	m = runPages(t, m, cmd)
	if m.err != nil || m.surface.Len() == 0 {
		t.Fatalf("retry should load items, err=%v len=%d", m.err, m.surface.Len())
	}
}

func TestHandlePageMsgIgnoresCanceled(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(10), 10, flatLayout())
	m.pager.Begin()
	m2, cmd := m.handlePageMsg(pageMsg{err: context.Canceled})

	if m2.err != nil {
		t.Fatalf("err should remain nil on cancellation, got %v", m2.err)
	}
	if cmd != nil {
		t.Fatalf("canceled load should not schedule more work")
	}
	if m2.pager.Status().InFlight {
		t.Fatalf("pager should not be in flight after a canceled load")
	}
}

func TestFollowTickOnlyLoadsAtEnd(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(1000), 50, flatLayout())
	m = load(t, m)

	m, _ = m.handleFollowTick()
	if m.pager.Status().InFlight {
		t.Fatalf("tick away from the end should not load")
	}

	// Move to the end without going through the load threshold
	m.surface.HandleScroll(m.surface.Sample(m.surface.Config().MaxScroll()))
	if !m.atEnd() {
		t.Fatalf("window should reach the last slot")
	}
	m, _ = m.handleFollowTick()
	if !m.pager.Status().InFlight {
		t.Fatalf("tick at the end should load")
	}
}

func TestConfigFileChangeAppliesLayout(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, feed.NewSynthetic(10), 10, flatLayout())

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  columns: 3\n  header_height: 0\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	m2, cmd := m.handleConfigFileChanged(configFileChangedMsg{Path: path})
	if cmd == nil {
		t.Fatalf("watch should be re-armed")
	}
	if m2.columns != 3 || m2.surface.Config().ColumnCount != 3 {
		t.Fatalf("columns = %d, want 3", m2.columns)
	}
	if m2.statusMessage != "Layout reloaded" {
		t.Fatalf("status = %q", m2.statusMessage)
	}

	if err := os.WriteFile(path, []byte("layout:\n  columns: 99\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	m3, _ := m2.handleConfigFileChanged(configFileChangedMsg{Path: path})
	if m3.columns != 3 {
		t.Fatalf("invalid layout must be ignored, columns = %d", m3.columns)
	}
	if !strings.Contains(m3.statusMessage, "Config not applied") {
		t.Fatalf("status = %q", m3.statusMessage)
	}
}

func TestWatchConfigFileReportsWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("layout: {}\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- watchConfigFile(path)() }()

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case msg := <-got:
			changed, ok := msg.(configFileChangedMsg)
			if !ok || changed.Path != path {
				t.Fatalf("msg = %#v, want configFileChangedMsg", msg)
			}
			return
		case <-tick.C:
			// The watcher may not be armed yet; keep writing until it notices
			_ = os.WriteFile(path, []byte("layout:\n  columns: 2\n"), 0600)
		case <-deadline:
			t.Fatalf("no change reported")
		}
	}
}
