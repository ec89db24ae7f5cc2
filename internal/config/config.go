// Package config handles application configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// envAPIKey overrides the configured API key when set.
const envAPIKey = "CODRAW_API_KEY"

// Config is the top-level application configuration.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Pen        PenConfig        `yaml:"pen"`
	Generation GenerationConfig `yaml:"generation"`
}

// CanvasConfig fixes the intrinsic drawing surface size in pixels.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PenConfig sets the initial drawing tool.
type PenConfig struct {
	Color string `yaml:"color"` // hex, e.g. "#dc2828"
	Width int    `yaml:"width"`
}

// GenerationConfig controls the image generation service.
type GenerationConfig struct {
	Endpoint       string   `yaml:"endpoint"`
	APIKey         string   `yaml:"api_key"`
	Model          string   `yaml:"model"`
	Models         []string `yaml:"models"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (g GenerationConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "codraw", "config.yaml"), nil
}

// Load reads a YAML configuration file. A missing file yields the defaults;
// a malformed one is an error. The CODRAW_API_KEY environment variable
// overrides the configured API key either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if key := os.Getenv(envAPIKey); key != "" {
		cfg.Generation.APIKey = key
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = 960
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = 540
	}
	if c.Pen.Color == "" {
		c.Pen.Color = "#000000"
	}
	if c.Pen.Width <= 0 {
		c.Pen.Width = 3
	}
	if c.Generation.Endpoint == "" {
		c.Generation.Endpoint = "https://generativelanguage.googleapis.com"
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gemini-2.5-flash-image-preview"
	}
	if len(c.Generation.Models) == 0 {
		c.Generation.Models = []string{
			"gemini-2.5-flash-image-preview",
			"gemini-2.0-flash-preview-image-generation",
		}
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = 60
	}
}
