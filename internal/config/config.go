// Package config loads presencectl and accordion settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/presencex/internal/logging"
)

// Persist formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	LogLevel      string `yaml:"log_level"`
	FrameRate     int    `yaml:"frame_rate"` // frames per second
	StateDir      string `yaml:"state_dir"`  // snapshots are written here when set
	PersistFormat string `yaml:"persist_format"`
	Trace         bool   `yaml:"trace"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:      logging.LevelInfo,
		FrameRate:     60,
		PersistFormat: FormatJSON,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.FrameRate <= 0 || c.FrameRate > 1000 {
		return fmt.Errorf("frame_rate %d out of range 1-1000", c.FrameRate)
	}
	switch c.PersistFormat {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("persist_format %q: want json or yaml", c.PersistFormat)
	}
	return nil
}

// FrameInterval is the duration of one frame at FrameRate.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}
