// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#5A5A5A")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFCC00")
	errorColor     = lipgloss.Color("#FF5F56")
	infoColor      = lipgloss.Color("#61AFEF")
	debugColor     = lipgloss.Color("#6C757D")
	traceColor     = lipgloss.Color("#888888")
	fgColor        = lipgloss.Color("#E0E0E0")
	mutedColor     = lipgloss.Color("#6C757D")
	stripeColor    = lipgloss.Color("#262630")
)

// Styles
var (
	// Title header drawn over the top of the list
	TitleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	StatusValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	StatusMessageStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	// Odd rows get a faint background
	StripeStyle = lipgloss.NewStyle().
			Background(stripeColor)

	// Timestamp (width controlled by column layout, not style)
	TimestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Service name (width controlled by column layout, not style)
	ServiceStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true)

	MessageStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	SourceStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Jump prompt
	PromptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	PromptLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	HelpGroupStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(1, 2)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Loading style
	LoadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// LevelStyle returns the appropriate style for a log level
// Width is controlled by column layout, not by this style
func LevelStyle(level string) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch strings.ToUpper(level) {
	case "ERROR", "FATAL":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(errorColor).Bold(true)
	case "WARN", "WARNING":
		return base.Foreground(lipgloss.Color("#000000")).Background(warningColor)
	case "INFO":
		return base.Foreground(lipgloss.Color("#FFFFFF")).Background(successColor)
	case "DEBUG":
		return base.Foreground(debugColor)
	case "TRACE":
		return base.Foreground(traceColor)
	default:
		return base.Foreground(fgColor)
	}
}
