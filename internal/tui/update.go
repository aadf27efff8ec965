// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"

	"github.com/elastic/scrollcat/internal/es"
	"github.com/elastic/scrollcat/internal/feed"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case pageMsg:
		return m.handlePageMsg(msg)

	case followTickMsg:
		return m.handleFollowTick()

	case configFileChangedMsg:
		return m.handleConfigFileChanged(msg)

	case configWatchErrorMsg:
		m.setStatus("Config watch stopped: " + msg.Err.Error())
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeJump:
		return m.handleJumpKey(msg)
	case modeHelp:
		return m.handleHelpKey(msg)
	}

	cfg := m.surface.Config()
	var cmd tea.Cmd

	switch actionFor(msg.String()) {
	case ActionDown:
		cmd = m.scrollBy(cfg.ItemHeight)
	case ActionUp:
		cmd = m.scrollBy(-cfg.ItemHeight)
	case ActionPageDown:
		cmd = m.scrollBy(cfg.ViewportHeight)
	case ActionPageUp:
		cmd = m.scrollBy(-cfg.ViewportHeight)
	case ActionTop:
		cmd = m.scrollTo(0)
	case ActionBottom:
		cmd = m.scrollTo(cfg.MaxScroll())
	case ActionColumns:
		cmd = m.cycleColumns()
		m.setStatus(fmt.Sprintf("Columns: %d", m.columns))
	case ActionHeader:
		cmd = m.toggleHeader()
	case ActionJump:
		m.mode = modeJump
		m.jump.SetValue("")
		return m, m.jump.Focus()
	case ActionHelp:
		m.mode = modeHelp
		m.help.Width = max(20, m.width-8)
		m.help.Height = max(3, m.height-6)
		m.help.SetContent(m.renderHelpContent())
		m.help.GotoTop()
	case ActionCopy:
		if item, ok := m.firstVisibleItem(); ok {
			m.copyToClipboard(item.Line(), "Row copied to clipboard!")
		}
	case ActionCopyRaw:
		if item, ok := m.firstVisibleItem(); ok {
			raw := item.Raw
			if raw == "" {
				raw = item.Line()
			}
			m.copyToClipboard(es.PrettyJSON(raw), "Raw record copied to clipboard!")
		}
	case ActionRetry:
		if m.err != nil {
			m.err = nil
			cmd = m.loadMore()
		}
	case ActionQuit:
		m.cancelAll()
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.jump.Blur()
		return m, nil
	case "enter":
		m.mode = modeList
		m.jump.Blur()
		row, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
		if err != nil || row < 0 {
			m.setStatus("Not a row number: " + m.jump.Value())
			return m, nil
		}
		if row >= m.surface.Len() {
			m.setStatus(fmt.Sprintf("Row %d not loaded yet (%d loaded)", row, m.surface.Len()))
		}
		return m, m.jumpTo(row)
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeList || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	step := float64(max(1, m.cfg.TUI.WheelStep))
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m, m.scrollBy(step)
	case tea.MouseButtonWheelUp:
		return m, m.scrollBy(-step)
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	cmd := m.applyGeometry()
	if !m.laidOut {
		m.laidOut = true
		m.surface.Layout()
	}
	return m, cmd
}

// firstVisibleItem returns the first data item drawn at the top of the viewport.
func (m Model) firstVisibleItem() (feed.Item, bool) {
	cfg := m.surface.Config()
	top := int(m.surface.Offset()/cfg.ItemHeight) - cfg.HeaderSlots()
	return m.surface.At(max(0, top))
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusTime = time.Now()
}

// copyToClipboard copies text and sets status message
func (m *Model) copyToClipboard(text, successMsg string) {
	if err := clipboard.Init(); err != nil {
		m.setStatus("Clipboard error: " + err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	m.setStatus(successMsg)
}
