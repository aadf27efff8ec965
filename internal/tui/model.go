// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package tui hosts a virtualized record list in a bubbletea program.
// Scroll offsets are measured in terminal lines.
package tui

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/scrollcat/internal/config"
	"github.com/elastic/scrollcat/internal/feed"
	"github.com/elastic/scrollcat/internal/telemetry"
	"github.com/elastic/scrollcat/internal/vscroll"
)

type mode int

const (
	modeList mode = iota
	modeJump
	modeHelp
)

// chromeLines is the number of terminal lines used by the status and help bars.
const chromeLines = 2

// Model is the bubbletea model for the list view.
type Model struct {
	ctx       context.Context
	cfg       config.Config
	pager     *feed.Pager
	telemetry *telemetry.Emitter
	surface   *vscroll.Surface[feed.Item, string]
	header    *vscroll.Header[string]

	width  int
	height int

	layout     config.LayoutConfig
	columns    int
	showHeader bool
	laidOut    bool

	mode mode
	jump textinput.Model
	help viewport.Model

	statusMessage string
	statusTime    time.Time
	err           error

	cancels map[requestKind]requestState
}

// Options configures a Model.
type Options struct {
	Context   context.Context
	Config    config.Config
	Pager     *feed.Pager
	Telemetry *telemetry.Emitter
	Width     int
	Height    int
}

// NewModel builds the list model. Width and Height seed the geometry until
// the first WindowSizeMsg arrives.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.Noop()
	}

	jump := textinput.New()
	jump.Prompt = "row "
	jump.Placeholder = "0"
	jump.CharLimit = 12

	m := Model{
		ctx:        ctx,
		cfg:        opts.Config,
		pager:      opts.Pager,
		telemetry:  tel,
		width:      opts.Width,
		height:     opts.Height,
		layout:     opts.Config.Layout,
		columns:    max(1, opts.Config.Layout.Columns),
		showHeader: opts.Config.Layout.HeaderHeight > 0,
		jump:       jump,
		help:       viewport.New(0, 0),
		cancels:    make(map[requestKind]requestState),
	}

	m.header = &vscroll.Header[string]{
		Height: float64(headerLines(m.layout)),
		Render: m.headerRenderer(),
	}
	var surface *vscroll.Surface[feed.Item, string]
	surface = vscroll.NewSurface(vscroll.Options[feed.Item, string]{
		ItemHeight:     float64(itemLines(m.layout)),
		ViewportHeight: float64(m.viewportLines()),
		Overscan:       m.layout.OverscanCount(),
		Columns:        m.columns,
		RenderItem:     renderItem,
		OnLayout: func() {
			tel.Window(ctx, surface.Window())
		},
	})
	m.surface = surface
	if m.showHeader {
		m.surface.SetHeader(m.header)
	}
	return m
}

// Init starts the first page load and, when a config file is in use,
// watches it for layout changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadMore()}
	if m.cfg.File != "" {
		cmds = append(cmds, watchConfigFile(m.cfg.File))
	}
	if m.pager != nil && m.pager.Following() {
		cmds = append(cmds, followTick())
	}
	return tea.Batch(cmds...)
}

// itemLines is the item height rounded to whole terminal lines.
func itemLines(l config.LayoutConfig) int {
	return max(1, int(math.Round(l.ItemHeight)))
}

// headerLines is the header height rounded up to whole terminal lines.
func headerLines(l config.LayoutConfig) int {
	return int(math.Ceil(l.HeaderHeight))
}

// listLines is the space left for the list after the status and help bars.
func (m Model) listLines() int {
	return max(1, m.height-chromeLines)
}

// viewportLines is the configured viewport height, bounded by the terminal.
func (m Model) viewportLines() int {
	avail := m.listLines()
	if m.layout.ViewportHeight > 0 {
		return min(avail, int(math.Ceil(m.layout.ViewportHeight)))
	}
	return avail
}

// columnWidth is the width of a single grid column.
func (m Model) columnWidth() int {
	return max(1, m.width/m.columns)
}
