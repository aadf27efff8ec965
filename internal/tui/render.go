// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/elastic/scrollcat/internal/feed"
	"github.com/elastic/scrollcat/internal/vscroll"
)

const title = "\\ =ↀ_ↀ= scrollcat =ↀ_ↀ= /"

// View renders the list, the status bar and the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return LoadingStyle.Render("Loading...")
	}

	var body string
	switch m.mode {
	case modeJump:
		prompt := PromptLabelStyle.Render("Jump to row") + "\n" + m.jump.View()
		body = lipgloss.Place(m.width, m.listLines(), lipgloss.Center, lipgloss.Center,
			PromptStyle.Render(prompt))
	case modeHelp:
		body = lipgloss.Place(m.width, m.listLines(), lipgloss.Center, lipgloss.Center,
			HelpOverlayStyle.Render(m.help.View()))
	default:
		body = m.renderList()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar(), m.renderHelpBar())
}

// renderList draws the current frame into listLines terminal lines.
func (m Model) renderList() string {
	f := m.surface.Frame()
	rowLines := itemLines(m.layout)
	colWidth := m.columnWidth()

	// Materialize the window starting at its pixel offset
	block := make([]string, 0, len(f.Rows)*rowLines)
	for _, row := range f.Rows {
		block = append(block, m.renderRow(row.Spacer, row.Cells, rowLines, colWidth)...)
	}

	skip := int(m.surface.Offset() - f.Window.PixelOffset)
	vp := m.viewportLines()
	lines := make([]string, vp)
	for y := range lines {
		if i := skip + y; i >= 0 && i < len(block) {
			lines[y] = block[i]
		}
	}

	if f.HasHeader {
		header := strings.Split(f.Header, "\n")
		top := int(math.Round(f.HeaderTranslate))
		for k := 0; k < len(header) && k < int(math.Ceil(f.HeaderHeight)); k++ {
			if y := top + k; y >= 0 && y < vp {
				lines[y] = fitLine(header[k], m.width)
			}
		}
	}

	if m.surface.Len() == 0 && (m.pager == nil || m.pager.Status().Done) && m.err == nil {
		lines[min(vp-1, headerLines(m.layout))] = LoadingStyle.Render("No records")
	}

	for len(lines) < m.listLines() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow lays the cells of one slot side by side, each clipped to a
// column and padded to the row height.
func (m Model) renderRow(spacer bool, cells []vscroll.RenderedCell[string], rowLines, colWidth int) []string {
	out := make([]string, rowLines)
	if spacer || len(cells) == 0 {
		return out
	}
	for _, c := range cells {
		parts := strings.Split(c.Content, "\n")
		for y := 0; y < rowLines; y++ {
			var part string
			if y < len(parts) {
				part = parts[y]
			}
			// Empty columns keep their width so later columns stay aligned
			pad := colWidth * c.Column
			if w := ansi.StringWidth(out[y]); w < pad {
				out[y] += strings.Repeat(" ", pad-w)
			}
			out[y] += fitLine(part, colWidth)
		}
	}
	return out
}

// fitLine truncates s to width cells and pads it with spaces.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// renderItem draws a record as a message line followed by a source line.
// index is the slot the row occupies; odd slots are striped.
func renderItem(it feed.Item, index int) string {
	var parts []string
	if !it.Timestamp.IsZero() {
		parts = append(parts, TimestampStyle.Render(it.Timestamp.Local().Format(time.TimeOnly)))
	}
	if it.Level != "" {
		level := strings.ToUpper(it.Level)
		parts = append(parts, LevelStyle(level).Render(fmt.Sprintf("%-5s", level)))
	}
	if it.Service != "" {
		parts = append(parts, ServiceStyle.Render(it.Service))
	}
	parts = append(parts, MessageStyle.Render(strings.ReplaceAll(it.Message, "\n", " ")))

	first := strings.Join(parts, " ")
	second := SourceStyle.Render(fmt.Sprintf("  #%d %s", index, it.Source))
	if index%2 == 1 {
		first = StripeStyle.Render(first)
		second = StripeStyle.Render(second)
	}
	return first + "\n" + second
}

// headerRenderer returns the header render function for the current width,
// columns and source.
func (m Model) headerRenderer() func() string {
	width := m.width
	columns := m.columns
	var source string
	if m.pager != nil {
		source = m.pager.Source().Name()
	}
	return func() string {
		return renderHeader(width, columns, source)
	}
}

// renderHeader draws the title line and one label per column.
func renderHeader(width, columns int, source string) string {
	right := "[ " + source + " ]"
	fill := width - lipgloss.Width(title) - lipgloss.Width(right)
	var top string
	if source == "" || fill < 1 {
		top = title + strings.Repeat("═", max(0, width-lipgloss.Width(title)))
	} else {
		top = title + strings.Repeat("═", fill) + right
	}

	colWidth := max(1, width/max(1, columns))
	var labels strings.Builder
	for c := 0; c < columns; c++ {
		labels.WriteString(fitLine("TIME     LEVEL SERVICE MESSAGE", colWidth))
	}
	return TitleHeaderStyle.Render(top) + "\n" + HeaderLabelStyle.Render(labels.String())
}

// renderStatusBar renders errors and messages first, then the window position and pager state.
func (m Model) renderStatusBar() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render("err: "+firstLine(m.err.Error())+" (r to retry)"))
	}
	if m.statusMessage != "" && time.Since(m.statusTime) < m.statusTimeout() {
		parts = append(parts, StatusMessageStyle.Render(m.statusMessage))
	}

	w := m.surface.Window()
	cfg := m.surface.Config()
	first := max(0, w.StartIndex-cfg.HeaderSlots())
	last := max(0, w.EndIndex-cfg.HeaderSlots())
	total := "?"
	var loading bool
	if m.pager != nil {
		st := m.pager.Status()
		if st.Total >= 0 {
			total = fmt.Sprintf("%d", st.Total)
		}
		loading = st.InFlight
		parts = append(parts, StatusKeyStyle.Render("Src: ")+StatusValueStyle.Render(m.pager.Source().Name()))
	}
	parts = append(parts,
		StatusKeyStyle.Render("Rows: ")+StatusValueStyle.Render(fmt.Sprintf("%d-%d of %d/%s", first, last, m.surface.Len(), total)),
		StatusKeyStyle.Render("Scroll: ")+StatusValueStyle.Render(m.surface.State().Direction.String()),
		StatusKeyStyle.Render("Cols: ")+StatusValueStyle.Render(fmt.Sprintf("%d", m.columns)),
	)

	if loading {
		parts = append(parts, LoadingStyle.Render("loading..."))
	}

	// Wrapping would push the list off screen
	line := ansi.Truncate(strings.Join(parts, "  │  "), max(0, m.width-2), "…")
	return StatusBarStyle.Width(max(0, m.width)).Render(line)
}

func (m Model) statusTimeout() time.Duration {
	if m.cfg.TUI.StatusTimeout > 0 {
		return m.cfg.TUI.StatusTimeout
	}
	return 3 * time.Second
}

// renderHelpBar renders the quick bindings for the current mode.
func (m Model) renderHelpBar() string {
	var keys []string
	for _, b := range m.QuickBindings() {
		keys = append(keys, HelpKeyStyle.Render(strings.Join(b.Keys, "/"))+HelpDescStyle.Render(" "+b.Label))
	}
	return HelpStyle.Render(ansi.Truncate(strings.Join(keys, "  "), max(0, m.width-2), "…"))
}

// renderHelpContent renders the full binding list grouped for the help overlay.
func (m Model) renderHelpContent() string {
	var b strings.Builder
	currentGroup := ""
	for _, kb := range m.FullBindings() {
		if kb.Group != currentGroup {
			if currentGroup != "" {
				b.WriteString("\n")
			}
			currentGroup = kb.Group
			b.WriteString(HelpGroupStyle.Render(currentGroup) + "\n")
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			HelpKeyStyle.Render(fmt.Sprintf("%-16s", strings.Join(kb.Keys, ", "))),
			HelpDescStyle.Render(kb.Label)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
