// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osSignal "os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/elastic/scrollcat/internal/config"
	"github.com/elastic/scrollcat/internal/es"
	"github.com/elastic/scrollcat/internal/feed"
	"github.com/elastic/scrollcat/internal/index"
	"github.com/elastic/scrollcat/internal/telemetry"
	"github.com/elastic/scrollcat/internal/tui"
	"github.com/elastic/scrollcat/internal/watch"
)

var uiCmd = &cobra.Command{
	Use:   "ui [files...]",
	Short: "Open the interactive viewer",
	Long: `Opens the virtualized list viewer.

The record source is chosen with --source:
  synthetic  generated records (default, --count controls how many)
  file       log files given as arguments or globs, optionally followed with -f
  es         an Elasticsearch index pattern (--es-url, --index, --query)

Examples:
  scrollcat ui --count 1000000
  scrollcat ui --source file -f /var/log/app/*.log
  scrollcat ui --source es --index 'logs-*' --lookback now-1h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := config.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("configuration not loaded")
		}
		if len(args) > 0 {
			cfg.Source.Files = args
			if !cmd.Flags().Changed("source") {
				cfg.Source.Kind = config.SourceFile
			}
		}
		return runTUI(cmd.Context(), cfg)
	},
}

func init() {
	f := uiCmd.Flags()
	f.String("source", config.SourceSynthetic, "Record source: synthetic, file, es (env: SCROLLCAT_SOURCE_KIND)")
	f.Int("page-size", config.DefaultPageSize, "Records requested per page (env: SCROLLCAT_SOURCE_PAGE_SIZE)")
	f.Int("count", config.DefaultSyntheticCount, "Synthetic record count, -1 = unbounded")
	f.BoolP("follow", "f", false, "Follow files for appended lines")
	f.String("service", "", "Service name for file records (default: derived from filename)")
	f.String("es-url", config.DefaultESURL, "Elasticsearch URL (env: SCROLLCAT_ES_URL)")
	f.StringP("index", "i", config.DefaultIndex, "Index pattern or logs, traces, metrics, all (env: SCROLLCAT_ES_INDEX)")
	f.String("api-key", "", "Elasticsearch API key, ${ENV_VAR} references allowed (env: SCROLLCAT_ES_API_KEY)")
	f.StringP("query", "q", "", "Elasticsearch query_string filter")
	f.String("lookback", "", "Only records newer than this ES date math, e.g. now-1h")
	f.Duration("ping-timeout", config.DefaultPingTimeout, "Elasticsearch ping timeout (env: SCROLLCAT_ES_PING_TIMEOUT)")
	f.String("otlp", config.DefaultOTLPEndpoint, "OTLP HTTP endpoint for scroll telemetry (env: SCROLLCAT_OTLP_ENDPOINT)")
	f.Bool("otlp-enabled", false, "Export scroll and paging events as OTLP logs (env: SCROLLCAT_OTLP_ENABLED)")
	f.Int("wheel-step", config.DefaultWheelStep, "Lines scrolled per mouse wheel notch")
	rootCmd.AddCommand(uiCmd)
}

func runTUI(parentCtx context.Context, cfg config.Config) error {
	notifyCtx, stop := osSignal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(notifyCtx, telemetry.Config{
		Enabled:     cfg.OTLP.Enabled,
		Endpoint:    cfg.OTLP.Endpoint,
		Insecure:    cfg.OTLP.Insecure,
		ServiceName: "scrollcat",
	})
	if err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}
	defer func() {
		_ = tel.Close(context.Background())
	}()

	src, closeSrc, err := openSource(notifyCtx, cfg, tel, os.Stderr)
	if err != nil {
		return err
	}
	defer closeSrc()

	width, height := terminalSize()
	model := tui.NewModel(tui.Options{
		Context:   notifyCtx,
		Config:    cfg,
		Pager:     feed.NewPager(src, cfg.Source.PageSize),
		Telemetry: tel,
		Width:     width,
		Height:    height,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(notifyCtx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// openSource builds the configured record source. The returned close
// function releases followers and is always safe to call.
func openSource(ctx context.Context, cfg config.Config, tel *telemetry.Emitter, warn io.Writer) (feed.Source, func(), error) {
	noop := func() {}

	switch cfg.Source.Kind {
	case config.SourceFile:
		src, err := watch.Open(ctx, watch.Config{
			Files:   cfg.Source.Files,
			Service: cfg.Source.Service,
			Follow:  cfg.Source.Follow,
			OnError: func(file string, err error) {
				tel.PageFailed(ctx, file, err)
			},
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open files: %w", err)
		}
		return src, func() { _ = src.Close() }, nil

	case config.SourceES:
		client, err := es.New(es.Options{
			Addresses: []string{cfg.ES.URL},
			Index:     index.Resolve(cfg.ES.Index),
			APIKey:    cfg.ES.APIKey,
			Username:  cfg.ES.Username,
			Password:  cfg.ES.Password,
			Query:     cfg.ES.Query,
			Lookback:  cfg.ES.Lookback,
		})
		if err != nil {
			return nil, noop, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ES.PingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			fmt.Fprintf(warn, "Warning: could not connect to Elasticsearch at %s: %v\n", cfg.ES.URL, err)
			fmt.Fprintln(warn, "Pages will fail until it is reachable; press r in the viewer to retry.")
			fmt.Fprintln(warn)
		}
		return client, noop, nil

	default:
		return feed.NewSynthetic(cfg.Source.SyntheticCount), noop, nil
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}
