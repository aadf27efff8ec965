// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/elastic/scrollcat/internal/config"
)

// configFileChangedMsg is sent when the config file is written.
type configFileChangedMsg struct {
	Path string
}

// configWatchErrorMsg is sent when the config watcher fails.
type configWatchErrorMsg struct {
	Err error
}

// watchConfigFile watches the config file for changes and sends a message when modified.
// Returns a command that blocks until the next change.
// The parent directory is watched because many editors replace the file on save.
func watchConfigFile(configPath string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return configWatchErrorMsg{Err: fmt.Errorf("create watcher: %w", err)}
		}
		defer watcher.Close()

		target := filepath.Clean(configPath)
		if err := watcher.Add(filepath.Dir(target)); err != nil {
			return configWatchErrorMsg{Err: fmt.Errorf("watch file: %w", err)}
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return configWatchErrorMsg{Err: fmt.Errorf("watcher closed")}
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				// Check for write or create events (some editors recreate the file)
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return configFileChangedMsg{Path: configPath}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return configWatchErrorMsg{Err: fmt.Errorf("watcher closed")}
				}
				return configWatchErrorMsg{Err: err}
			}
		}
	}
}

// handleConfigFileChanged re-reads the layout section and keeps watching.
// An invalid file leaves the current layout in place.
func (m Model) handleConfigFileChanged(msg configFileChangedMsg) (Model, tea.Cmd) {
	watch := watchConfigFile(msg.Path)

	layout, err := config.LoadLayout(msg.Path)
	if err != nil {
		m.setStatus("Config not applied: " + err.Error())
		return m, watch
	}

	cmd := m.applyLayout(layout)
	m.telemetry.LayoutReloaded(m.ctx, m.surface.Config())
	m.setStatus("Layout reloaded")
	return m, tea.Batch(cmd, watch)
}
