// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package telemetry emits scrollcat's own operational records through the
// OpenTelemetry log API. The terminal belongs to the TUI, so nothing here
// writes to stdout or stderr.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/elastic/scrollcat/internal/vscroll"
)

const scopeName = "github.com/elastic/scrollcat"

// Config holds OTLP export settings
type Config struct {
	Enabled     bool
	Endpoint    string // OTLP HTTP endpoint (default: localhost:4318)
	Insecure    bool   // Use HTTP instead of HTTPS
	ServiceName string
}

// Emitter writes records for scroll and paging events.
type Emitter struct {
	logger   log.Logger
	shutdown func(context.Context) error
}

// New returns an Emitter that exports over OTLP/HTTP when enabled, and a
// no-op one otherwise.
func New(ctx context.Context, cfg Config) (*Emitter, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "scrollcat"
	}

	opts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}

	exporter, err := otlploghttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	return newEmitter(provider, provider.Shutdown), nil
}

// Noop returns an Emitter that drops every record.
func Noop() *Emitter {
	return newEmitter(noop.NewLoggerProvider(), nil)
}

func newEmitter(provider log.LoggerProvider, shutdown func(context.Context) error) *Emitter {
	return &Emitter{
		logger:   provider.Logger(scopeName),
		shutdown: shutdown,
	}
}

// Close flushes and shuts down the exporter.
func (e *Emitter) Close(ctx context.Context) error {
	if e == nil || e.shutdown == nil {
		return nil
	}
	return e.shutdown(ctx)
}

// LoadMore records a threshold crossing.
func (e *Emitter) LoadMore(ctx context.Context, u vscroll.Update, dataLen int) {
	e.emit(ctx, "INFO", "load more", "scroll.load_more",
		log.Float64("scroll.offset", u.Offset),
		log.String("scroll.direction", u.Direction.String()),
		log.Int("data.length", dataLen),
	)
}

// PageLoaded records a successful page fetch.
func (e *Emitter) PageLoaded(ctx context.Context, source string, offset, count int, total int64) {
	e.emit(ctx, "DEBUG", fmt.Sprintf("loaded %d items from %s", count, source), "feed.page_loaded",
		log.String("feed.source", source),
		log.Int("feed.offset", offset),
		log.Int("feed.count", count),
		log.Int64("feed.total", total),
	)
}

// PageFailed records a failed page fetch.
func (e *Emitter) PageFailed(ctx context.Context, source string, err error) {
	e.emit(ctx, "ERROR", err.Error(), "feed.page_failed",
		log.String("feed.source", source),
	)
}

// LayoutReloaded records geometry applied from the config file.
func (e *Emitter) LayoutReloaded(ctx context.Context, cfg vscroll.LayoutConfig) {
	e.emit(ctx, "INFO", "layout reloaded", "layout.reloaded",
		log.Float64("layout.item_height", cfg.ItemHeight),
		log.Float64("layout.viewport_height", cfg.ViewportHeight),
		log.Int("layout.overscan", cfg.OverscanCount),
		log.Int("layout.columns", cfg.ColumnCount),
		log.Float64("layout.header_height", cfg.HeaderHeight),
	)
}

// Window records a computed window.
func (e *Emitter) Window(ctx context.Context, w vscroll.Window) {
	e.emit(ctx, "DEBUG", "window", "scroll.window",
		log.Int("window.start", w.StartIndex),
		log.Int("window.end", w.EndIndex),
		log.Float64("window.pixel_offset", w.PixelOffset),
	)
}

func (e *Emitter) emit(ctx context.Context, level, body, event string, attrs ...log.KeyValue) {
	if e == nil {
		return
	}
	var record log.Record
	now := time.Now()
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(levelToSeverity(level))
	record.SetSeverityText(level)
	record.SetBody(log.StringValue(body))
	record.AddAttributes(log.String("event.name", event))
	record.AddAttributes(attrs...)
	e.logger.Emit(ctx, record)
}

// levelToSeverity converts a level name to OTel severity
func levelToSeverity(level string) log.Severity {
	switch strings.ToUpper(level) {
	case "TRACE":
		return log.SeverityTrace
	case "DEBUG":
		return log.SeverityDebug
	case "INFO":
		return log.SeverityInfo
	case "WARN", "WARNING":
		return log.SeverityWarn
	case "ERROR":
		return log.SeverityError
	case "FATAL":
		return log.SeverityFatal
	default:
		return log.SeverityInfo
	}
}
