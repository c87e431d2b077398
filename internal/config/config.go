// Package config loads canvas-mcp settings from defaults, an optional YAML
// file and CANVAS_MCP_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
	"github.com/ironsheep/canvas-tools-mcp/internal/history"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig       = "CANVAS_MCP_CONFIG"
	EnvWidth        = "CANVAS_MCP_WIDTH"
	EnvHeight       = "CANVAS_MCP_HEIGHT"
	EnvBackground   = "CANVAS_MCP_BACKGROUND"
	EnvHistoryDepth = "CANVAS_MCP_HISTORY_DEPTH"
	EnvLogLevel     = "CANVAS_MCP_LOG_LEVEL"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level canvas-mcp configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"` // debug | info | warn | error
	Canvas   CanvasConfig  `yaml:"canvas"`
	History  HistoryConfig `yaml:"history"`
}

// CanvasConfig sizes the default canvas created at startup.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // hex, e.g. "#ffffff"
}

// HistoryConfig bounds the undo and redo stacks of every canvas.
type HistoryConfig struct {
	Depth int `yaml:"depth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file. Missing fields take defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if non-empty), then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = 800
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = 600
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = "#ffffff"
	}
	if c.History.Depth <= 0 {
		c.History.Depth = history.DefaultCapacity
	}
}

// ApplyEnv overrides fields from CANVAS_MCP_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvBackground); v != "" {
		c.Canvas.Background = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &c.Canvas.Width},
		{EnvHeight, &c.Canvas.Height},
		{EnvHistoryDepth, &c.History.Depth},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, e.name, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks sizes, the background color and the log level.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Width > canvas.MaxViewSide || c.Canvas.Height > canvas.MaxViewSide {
		return fmt.Errorf("%w: canvas size %dx%d exceeds %d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height, canvas.MaxViewSide)
	}
	if c.History.Depth <= 0 || c.History.Depth > history.MaxCapacity {
		return fmt.Errorf("%w: history depth %d must be between 1 and %d", ErrInvalidConfig, c.History.Depth, history.MaxCapacity)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BackgroundColor parses Canvas.Background.
func (c *Config) BackgroundColor() (canvas.Color, error) {
	return canvas.ParseHexColor(c.Canvas.Background)
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q", c.LogLevel)
	}
	return lvl, nil
}
