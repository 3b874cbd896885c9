// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "GRAVEYARD_CONFIG"

// Tab names a top-level view of the graveyard viewer.
type Tab string

const (
	// TabGraveyard is the home view: headline stats and recent burials.
	TabGraveyard Tab = "graveyard"
	// TabBugs is the filterable list with a detail pane.
	TabBugs Tab = "bugs"
	// TabAnalytics is the chart dashboard.
	TabAnalytics Tab = "analytics"
)

// Tabs returns every valid Tab in display order.
func Tabs() []Tab {
	return []Tab{TabGraveyard, TabBugs, TabAnalytics}
}

// Config is the master configuration for graveyard.
type Config struct {
	// Data selects the bug dataset.
	Data DataConfig `yaml:"data"`

	// Analytics configures the aggregation views.
	Analytics AnalyticsConfig `yaml:"analytics"`

	// UI configures the terminal viewer.
	UI UIConfig `yaml:"ui"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// DataConfig selects the bug dataset.
type DataConfig struct {
	// File is the dataset path. The format follows the extension
	// (.jsonl, .json, .yaml, .cbor, optionally .zst or .lz4).
	// Empty means the embedded sample dataset.
	File string `yaml:"file"`

	// Watch reloads File when it changes. Ignored when File is empty.
	Watch bool `yaml:"watch"`
}

// AnalyticsConfig configures the aggregation views.
type AnalyticsConfig struct {
	// HotspotLimit is how many modules the hotspot chart shows.
	// Default: 6
	HotspotLimit int `yaml:"hotspot_limit"`
}

// UIConfig configures the terminal viewer.
type UIConfig struct {
	// DefaultTab is the view shown at startup.
	// Default: graveyard
	DefaultTab Tab `yaml:"default_tab"`

	// SplitRatio is the list pane's share of the width on the bugs
	// tab. Must lie strictly between 0.2 and 0.8.
	// Default: 0.45
	SplitRatio float64 `yaml:"split_ratio"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	// Default: warn
	Level string `yaml:"level"`

	// Output is a file receiving JSON log records in addition to the
	// viewer's status bar. Empty disables file logging.
	Output string `yaml:"output"`
}

// Default returns the default configuration. It is also the base that
// a config file is merged into, so fields a file omits keep these
// values.
func Default() *Config {
	return &Config{
		Analytics: AnalyticsConfig{
			HotspotLimit: 6,
		},
		UI: UIConfig{
			DefaultTab: TabGraveyard,
			SplitRatio: 0.45,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the GRAVEYARD_CONFIG environment
// variable. When the variable is unset the defaults are returned:
// graveyard runs fine against its embedded dataset, so a missing
// config file is not an error. There is no search for config files in
// other locations.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// [Default]. ${HOME} and ${VAR:-default} references in path fields
// are expanded. The result is validated.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	c.Data.File = expandVars(c.Data.File)
	c.Log.Output = expandVars(c.Log.Output)
}

var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandVars(s string) string {
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := variablePattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(parts[1]); ok && value != "" {
			return value
		}
		return parts[3]
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Analytics.HotspotLimit <= 0 {
		errs = append(errs, fmt.Errorf("analytics.hotspot_limit must be positive, got %d", c.Analytics.HotspotLimit))
	}

	validTab := false
	for _, tab := range Tabs() {
		if c.UI.DefaultTab == tab {
			validTab = true
		}
	}
	if !validTab {
		errs = append(errs, fmt.Errorf("ui.default_tab must be one of %v, got %q", Tabs(), c.UI.DefaultTab))
	}

	if c.UI.SplitRatio <= 0.2 || c.UI.SplitRatio >= 0.8 {
		errs = append(errs, fmt.Errorf("ui.split_ratio must lie between 0.2 and 0.8, got %v", c.UI.SplitRatio))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Data.Watch && c.Data.File == "" {
		errs = append(errs, errors.New("data.watch requires data.file"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseLevel converts a log.level value to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", name)
}

// LogLevel returns the parsed log.level. Call Validate first; an
// invalid level falls back to warn.
func (c *Config) LogLevel() slog.Level {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}
