// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package config provides centralized configuration management for scrollcat.
// It supports deterministic precedence (flags > env > config file > defaults)
// using Viper, and fail-fast validation to prevent silent misconfiguration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/elastic/scrollcat/internal/index"
)

// Config holds all application configuration.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Source SourceConfig `mapstructure:"source" yaml:"source"`
	ES     ESConfig     `mapstructure:"es" yaml:"es"`
	OTLP   OTLPConfig   `mapstructure:"otlp" yaml:"otlp"`
	TUI    TUIConfig    `mapstructure:"tui" yaml:"tui"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// LayoutConfig holds list geometry. Heights are in terminal lines.
type LayoutConfig struct {
	ItemHeight     float64 `mapstructure:"item_height" yaml:"item_height"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"` // 0 = terminal height
	Overscan       int     `mapstructure:"overscan" yaml:"overscan"`               // -1 = derived from viewport
	Columns        int     `mapstructure:"columns" yaml:"columns"`
	HeaderHeight   float64 `mapstructure:"header_height" yaml:"header_height"` // 0 = no header
}

// SourceConfig selects and sizes the record source.
type SourceConfig struct {
	Kind           string   `mapstructure:"kind" yaml:"kind"`
	PageSize       int      `mapstructure:"page_size" yaml:"page_size"`
	Files          []string `mapstructure:"files" yaml:"files,omitempty"`
	Follow         bool     `mapstructure:"follow" yaml:"follow"`
	Service        string   `mapstructure:"service" yaml:"service,omitempty"`
	SyntheticCount int      `mapstructure:"synthetic_count" yaml:"synthetic_count"` // < 0 = unbounded
}

// ESConfig holds Elasticsearch connection settings.
type ESConfig struct {
	URL         string        `mapstructure:"url" yaml:"url"`
	Index       string        `mapstructure:"index" yaml:"index"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key,omitempty"` // Supports ${ENV_VAR} syntax
	Username    string        `mapstructure:"username" yaml:"username,omitempty"`
	Password    string        `mapstructure:"password" yaml:"password,omitempty"` // Supports ${ENV_VAR} syntax
	Query       string        `mapstructure:"query" yaml:"query,omitempty"`
	Lookback    string        `mapstructure:"lookback" yaml:"lookback,omitempty"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PingTimeout time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`
}

// OTLPConfig holds OpenTelemetry Protocol settings.
type OTLPConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure bool   `mapstructure:"insecure" yaml:"insecure"`
}

// TUIConfig holds interactive settings.
type TUIConfig struct {
	WheelStep     int           `mapstructure:"wheel_step" yaml:"wheel_step"`
	StatusTimeout time.Duration `mapstructure:"status_timeout" yaml:"status_timeout"`
}

// Source kinds.
const (
	SourceSynthetic = "synthetic"
	SourceFile      = "file"
	SourceES        = "es"
)

// Default configuration values.
const (
	DefaultItemHeight     = 1
	DefaultOverscan       = -1
	DefaultColumns        = 1
	DefaultHeaderHeight   = 3
	DefaultPageSize       = 200
	DefaultSyntheticCount = 10000
	DefaultESURL          = "http://localhost:9200"
	DefaultIndex          = index.Logs
	DefaultTimeout        = 30 * time.Second
	DefaultPingTimeout    = 5 * time.Second
	DefaultOTLPEndpoint   = "localhost:4318"
	DefaultWheelStep      = 3
	DefaultStatusTimeout  = 3 * time.Second
	MaxColumns            = 8
)

// ContextKey is used to store config in context.
type ContextKey struct{}

// FromContext retrieves Config from context.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(ContextKey{}).(Config)
	return cfg, ok
}

// WithContext stores Config in context.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ContextKey{}, cfg)
}

// Load builds a Config using Viper with precedence: flags > env > file > defaults.
// It binds flags from the command (and its parents) and fails fast on invalid values.
// The config file comes from the --config flag, falling back to the default
// location; a missing default file is not an error.
func Load(cmd *cobra.Command) (Config, error) {
	v := newViper()
	if err := bindFlagsRecursive(v, cmd); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	path, explicit := configFlag(cmd)
	file, err := readConfigFile(v, path, explicit)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = file

	if cfg.ES, err = cfg.ES.Resolve(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadLayout re-reads only the layout section from path, applying env and
// defaults. Used when the config file changes on disk.
func LoadLayout(path string) (LayoutConfig, error) {
	v := newViper()
	if _, err := readConfigFile(v, path, true); err != nil {
		return LayoutConfig{}, err
	}
	var layout LayoutConfig
	if err := v.UnmarshalKey("layout", &layout); err != nil {
		return LayoutConfig{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return LayoutConfig{}, err
	}
	return layout, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SCROLLCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// configFlag returns the --config value and whether it was set explicitly.
func configFlag(cmd *cobra.Command) (string, bool) {
	if cmd != nil {
		if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
			return f.Value.String(), true
		}
	}
	if env := os.Getenv("SCROLLCAT_CONFIG"); env != "" {
		return env, true
	}
	path, err := GetConfigPath()
	if err != nil {
		return "", false
	}
	return path, false
}

// readConfigFile merges path into v. A missing file is only an error when
// it was asked for explicitly. Returns the path that was read.
func readConfigFile(v *viper.Viper, path string, explicit bool) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return "", nil
		}
		return "", fmt.Errorf("read config file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("parse config file %s: %w", path, err)
	}
	return path, nil
}

// setDefaults registers default values with Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("layout.item_height", DefaultItemHeight)
	v.SetDefault("layout.viewport_height", 0)
	v.SetDefault("layout.overscan", DefaultOverscan)
	v.SetDefault("layout.columns", DefaultColumns)
	v.SetDefault("layout.header_height", DefaultHeaderHeight)

	v.SetDefault("source.kind", SourceSynthetic)
	v.SetDefault("source.page_size", DefaultPageSize)
	v.SetDefault("source.files", []string{})
	v.SetDefault("source.follow", false)
	v.SetDefault("source.service", "")
	v.SetDefault("source.synthetic_count", DefaultSyntheticCount)

	v.SetDefault("es.url", DefaultESURL)
	v.SetDefault("es.index", DefaultIndex)
	v.SetDefault("es.api_key", "")
	v.SetDefault("es.username", "")
	v.SetDefault("es.password", "")
	v.SetDefault("es.query", "")
	v.SetDefault("es.lookback", "")
	v.SetDefault("es.timeout", DefaultTimeout)
	v.SetDefault("es.ping_timeout", DefaultPingTimeout)

	v.SetDefault("otlp.enabled", false)
	v.SetDefault("otlp.endpoint", DefaultOTLPEndpoint)
	v.SetDefault("otlp.insecure", true)

	v.SetDefault("tui.wheel_step", DefaultWheelStep)
	v.SetDefault("tui.status_timeout", DefaultStatusTimeout)
}

// bindFlagsRecursive binds flags from cmd and all parents so Viper sees them.
func bindFlagsRecursive(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := bindFlagSet(v, cmd.Flags()); err != nil {
		return err
	}
	if err := bindFlagSet(v, cmd.PersistentFlags()); err != nil {
		return err
	}
	return bindFlagsRecursive(v, cmd.Parent())
}

// flagToKey maps flag names onto nested config keys.
var flagToKey = map[string]string{
	"item-height":     "layout.item_height",
	"viewport-height": "layout.viewport_height",
	"overscan":        "layout.overscan",
	"columns":         "layout.columns",
	"header-height":   "layout.header_height",
	"source":          "source.kind",
	"page-size":       "source.page_size",
	"follow":          "source.follow",
	"service":         "source.service",
	"count":           "source.synthetic_count",
	"es-url":          "es.url",
	"index":           "es.index",
	"api-key":         "es.api_key",
	"query":           "es.query",
	"lookback":        "es.lookback",
	"ping-timeout":    "es.ping_timeout",
	"otlp":            "otlp.endpoint",
	"otlp-enabled":    "otlp.enabled",
	"wheel-step":      "tui.wheel_step",
}

// bindFlagSet binds flags to Viper keys using explicit mappings to nested keys.
// Flags without a mapping are not config and are left alone.
func bindFlagSet(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Validate enforces correctness and fails fast on invalid configuration.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}

	switch c.Source.Kind {
	case SourceSynthetic, SourceFile:
	case SourceES:
		if strings.TrimSpace(c.ES.URL) == "" {
			return fmt.Errorf("es.url is required")
		}
		if strings.TrimSpace(c.ES.Index) == "" {
			return fmt.Errorf("es.index is required")
		}
	default:
		return fmt.Errorf("source.kind must be one of %s, %s, %s (got %q)",
			SourceSynthetic, SourceFile, SourceES, c.Source.Kind)
	}
	if c.Source.PageSize <= 0 {
		return fmt.Errorf("source.page_size must be > 0")
	}
	if c.ES.Timeout <= 0 {
		return fmt.Errorf("es.timeout must be > 0")
	}
	if c.ES.PingTimeout <= 0 {
		return fmt.Errorf("es.ping_timeout must be > 0")
	}
	if c.TUI.WheelStep <= 0 {
		return fmt.Errorf("tui.wheel_step must be > 0")
	}
	if c.TUI.StatusTimeout <= 0 {
		return fmt.Errorf("tui.status_timeout must be > 0")
	}
	return nil
}

// Validate checks geometry values.
func (l LayoutConfig) Validate() error {
	if l.ItemHeight <= 0 {
		return fmt.Errorf("layout.item_height must be > 0")
	}
	if l.ViewportHeight < 0 {
		return fmt.Errorf("layout.viewport_height must be >= 0")
	}
	if l.Overscan < -1 {
		return fmt.Errorf("layout.overscan must be >= -1")
	}
	if l.Columns < 1 || l.Columns > MaxColumns {
		return fmt.Errorf("layout.columns must be between 1 and %d", MaxColumns)
	}
	if l.HeaderHeight < 0 {
		return fmt.Errorf("layout.header_height must be >= 0")
	}
	return nil
}

// OverscanCount returns nil when overscan should be derived from the viewport.
func (l LayoutConfig) OverscanCount() *int {
	if l.Overscan < 0 {
		return nil
	}
	n := l.Overscan
	return &n
}
