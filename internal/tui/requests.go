// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elastic/scrollcat/internal/feed"
)

type requestKind int

const (
	requestPage requestKind = iota
)

type requestState struct {
	cancel context.CancelFunc
}

// startRequest derives a request context with timeout, canceling any
// in-flight request of the same kind. The context is released by
// finishRequest or cancelAll.
func (m *Model) startRequest(kind requestKind, timeout time.Duration) context.Context {
	if prev, ok := m.cancels[kind]; ok {
		prev.cancel()
	}

	parent := m.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)

	m.cancels[kind] = requestState{cancel: cancel}
	return ctx
}

// cancelAll cancels every in-flight request.
func (m *Model) cancelAll() {
	for kind, st := range m.cancels {
		st.cancel()
		delete(m.cancels, kind)
	}
}

// finishRequest releases the context of the current request of kind.
func (m *Model) finishRequest(kind requestKind) {
	if st, ok := m.cancels[kind]; ok {
		st.cancel()
		delete(m.cancels, kind)
	}
}

// pageMsg carries the result of one page load.
type pageMsg struct {
	page feed.Page
	err  error
}

// loadMore starts the next page load unless one is already in flight or the
// source is exhausted.
func (m *Model) loadMore() tea.Cmd {
	if m.pager == nil {
		return nil
	}
	fetch, ok := m.pager.Begin()
	if !ok {
		return nil
	}

	timeout := m.cfg.ES.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// Released by finishRequest when the pageMsg arrives
	ctx := m.startRequest(requestPage, timeout)
	return func() tea.Msg {
		page, err := fetch(ctx)
		return pageMsg{page: page, err: err}
	}
}

// handlePageMsg records the page with the pager and appends its items.
func (m Model) handlePageMsg(msg pageMsg) (Model, tea.Cmd) {
	m.pager.Complete(msg.page, msg.err)
	m.finishRequest(requestPage)
	source := m.pager.Source().Name()

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.err = msg.err
		m.telemetry.PageFailed(m.ctx, source, msg.err)
		return m, nil
	}

	m.err = nil
	st := m.pager.Status()
	m.surface.Append(msg.page.Items...)
	m.telemetry.PageLoaded(m.ctx, source, st.Loaded-len(msg.page.Items), len(msg.page.Items), st.Total)

	if m.underfilled() {
		return m, m.loadMore()
	}
	return m, nil
}

type followTickMsg time.Time

// followTick polls a following source for appended records.
func followTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return followTickMsg(t) })
}

func (m Model) handleFollowTick() (Model, tea.Cmd) {
	var load tea.Cmd
	if m.atEnd() && m.err == nil {
		load = m.loadMore()
	}
	return m, tea.Batch(load, followTick())
}
