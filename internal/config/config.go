// Package config holds the settings shared by the console and server
// binaries. Values come from defaults, then an optional YAML file, then
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benbeisheim/duelchess/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ListenAddr          string           `yaml:"listen_addr"`
	AllowedOrigins      []string         `yaml:"allowed_origins"`
	DataDir             string           `yaml:"data_dir"` // empty disables persistence
	LogLevel            string           `yaml:"log_level"`
	MatchmakingInterval time.Duration    `yaml:"matchmaking_interval"`
	Glyphs              model.GlyphStyle `yaml:"glyphs"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddr:          ":3000",
		AllowedOrigins:      []string{"http://localhost:5173"},
		LogLevel:            "info",
		MatchmakingInterval: time.Second,
		Glyphs:              model.GlyphsUnicode,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr is empty", ErrInvalidConfig)
	}
	if c.MatchmakingInterval <= 0 {
		return fmt.Errorf("%w: matchmaking_interval must be positive, got %s", ErrInvalidConfig, c.MatchmakingInterval)
	}
	if c.Glyphs != model.GlyphsUnicode && c.Glyphs != model.GlyphsASCII {
		return fmt.Errorf("%w: glyphs must be %q or %q, got %q", ErrInvalidConfig, model.GlyphsUnicode, model.GlyphsASCII, c.Glyphs)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto the fiber logger levels.
func (c *Config) Level() (log.Level, error) {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
}

// ApplyLogging sets the global log level from the config.
func (c *Config) ApplyLogging() error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
