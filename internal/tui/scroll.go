// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/scrollcat/internal/config"
)

// scrollTo reports offset to the surface, clamped to [0, maxScroll]. A
// threshold crossing starts a page load.
func (m *Model) scrollTo(offset float64) tea.Cmd {
	cfg := m.surface.Config()
	offset = math.Max(0, math.Min(offset, cfg.MaxScroll()))

	u := m.surface.HandleScroll(m.surface.Sample(offset))
	if !u.ShouldLoadMore {
		return nil
	}
	m.telemetry.LoadMore(m.ctx, u, m.surface.Len())
	return m.loadMore()
}

// scrollBy moves the offset by delta lines.
func (m *Model) scrollBy(delta float64) tea.Cmd {
	return m.scrollTo(m.surface.Offset() + delta)
}

// jumpTo scrolls so that data row sits at the top of the viewport.
func (m *Model) jumpTo(row int) tea.Cmd {
	cfg := m.surface.Config()
	row = max(0, min(row, cfg.ItemCount-1))
	return m.scrollTo(float64(row+cfg.HeaderSlots()) * cfg.ItemHeight)
}

// applyGeometry pushes the current terminal size and layout into the surface
// and re-clamps the offset.
func (m *Model) applyGeometry() tea.Cmd {
	m.surface.SetViewportHeight(float64(m.viewportLines()))
	m.surface.SetItemHeight(float64(itemLines(m.layout)))
	m.surface.SetColumns(m.columns)
	m.surface.SetOverscan(m.layout.OverscanCount())

	m.header.Height = float64(headerLines(m.layout))
	m.header.Render = m.headerRenderer()
	if m.showHeader && m.header.Height > 0 {
		m.surface.SetHeader(m.header)
	} else {
		m.surface.SetHeader(nil)
	}

	if m.surface.Offset() > m.surface.Config().MaxScroll() {
		return m.scrollTo(m.surface.Config().MaxScroll())
	}
	return nil
}

// applyLayout replaces the layout section, keeping the current column count
// only if the new layout leaves it unchanged.
func (m *Model) applyLayout(l config.LayoutConfig) tea.Cmd {
	if l.Columns != m.layout.Columns {
		m.columns = max(1, l.Columns)
	}
	if (l.HeaderHeight > 0) != (m.layout.HeaderHeight > 0) {
		m.showHeader = l.HeaderHeight > 0
	}
	m.layout = l
	return m.applyGeometry()
}

// cycleColumns steps the column count through 1..maxCycleColumns.
func (m *Model) cycleColumns() tea.Cmd {
	const maxCycleColumns = 4
	m.columns = m.columns%maxCycleColumns + 1
	return m.applyGeometry()
}

// toggleHeader shows or hides the header overlay.
func (m *Model) toggleHeader() tea.Cmd {
	if headerLines(m.layout) == 0 {
		m.setStatus("No header configured (layout.header_height)")
		return nil
	}
	m.showHeader = !m.showHeader
	return m.applyGeometry()
}

// atEnd reports whether the window reaches the last slot.
func (m Model) atEnd() bool {
	w := m.surface.Window()
	return w.EndIndex >= m.surface.Config().TotalSlots()
}

// underfilled reports whether loaded content fits in the viewport. Such a
// list cannot scroll, so no scroll sample would ever ask for more.
func (m Model) underfilled() bool {
	cfg := m.surface.Config()
	return cfg.ContentHeight() <= cfg.ViewportHeight
}
