// Package config loads runtime settings from HANDCRICKET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the game.
type Config struct {
	CameraID    int    `env:"HANDCRICKET_CAMERA"       envDefault:"0"`
	Width       int    `env:"HANDCRICKET_WIDTH"        envDefault:"1280"`
	Height      int    `env:"HANDCRICKET_HEIGHT"       envDefault:"720"`
	Mirror      bool   `env:"HANDCRICKET_MIRROR"       envDefault:"true"`
	WindowTitle string `env:"HANDCRICKET_WINDOW_TITLE" envDefault:"Hand Cricket"`
	Headless    bool   `env:"HANDCRICKET_HEADLESS"`

	MoveDelay     time.Duration `env:"HANDCRICKET_MOVE_DELAY"     envDefault:"2.5s"`
	MinConfidence float64       `env:"HANDCRICKET_MIN_CONFIDENCE" envDefault:"0.75"`
	Seed          int64         `env:"HANDCRICKET_SEED"`

	// DetectorScript overrides the hand_service.py search.
	DetectorScript string `env:"HANDCRICKET_DETECTOR_SCRIPT"`

	// Listen enables the spectator server, e.g. "127.0.0.1:8080".
	Listen    string `env:"HANDCRICKET_LISTEN"`
	StaticDir string `env:"HANDCRICKET_STATIC_DIR"`

	PluginDir     string        `env:"HANDCRICKET_PLUGIN_DIR"`
	PluginTimeout time.Duration `env:"HANDCRICKET_PLUGIN_TIMEOUT" envDefault:"5s"`

	Tray bool `env:"HANDCRICKET_TRAY"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CameraID < 0 {
		return errors.New("camera id must be >= 0")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", c.Width, c.Height)
	}
	if c.MoveDelay <= 0 {
		return errors.New("move delay must be > 0")
	}
	if c.MinConfidence <= 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v must be in (0, 1]", c.MinConfidence)
	}
	if c.PluginTimeout <= 0 {
		return errors.New("plugin timeout must be > 0")
	}
	return nil
}
