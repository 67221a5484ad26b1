package mural

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-loadable engine configuration. Every field is
// optional; zero values keep the built-in defaults. Invalid entries are
// contained per the engine's error policy: logged as warnings and ignored
// or clamped, never fatal.
type Config struct {
	Camera CameraConfig `yaml:"camera"`
	Grid   GridConfig   `yaml:"grid"`
	Embed  EmbedConfig  `yaml:"embed"`
	Hit    HitConfig    `yaml:"hit"`
}

// CameraConfig configures zoom limits and movement constraints.
type CameraConfig struct {
	MinZoom float64 `yaml:"minZoom"`
	MaxZoom float64 `yaml:"maxZoom"`
	// BoundsMode is one of free, contain, inside.
	BoundsMode string        `yaml:"boundsMode"`
	Bounds     *BoundsConfig `yaml:"bounds"`
}

// BoundsConfig is a world-space rectangle.
type BoundsConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"width"`
	H float64 `yaml:"height"`
}

// GridConfig configures the background grid.
type GridConfig struct {
	Spacing      float64 `yaml:"spacing"`
	MajorEvery   int     `yaml:"majorEvery"`
	VisibilityPx float64 `yaml:"visibilityPx"`
	Color        string  `yaml:"color"`
	Background   string  `yaml:"background"`
}

// EmbedConfig configures the embed resize ceiling.
type EmbedConfig struct {
	Buffer        float64 `yaml:"buffer"`
	MaxMultiplier float64 `yaml:"maxMultiplier"`
	DefaultMaxW   float64 `yaml:"defaultMaxWidth"`
	DefaultMaxH   float64 `yaml:"defaultMaxHeight"`
}

// HitConfig configures hit tolerances in screen pixels.
type HitConfig struct {
	BodyPx   float64 `yaml:"bodyPx"`
	HandlePx float64 `yaml:"handlePx"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// apply pushes validated configuration into the canvas. Each invalid entry
// degrades on its own so one bad field does not discard the rest.
func (cfg Config) apply(c *Canvas) {
	cam := cfg.Camera
	if cam.MinZoom != 0 || cam.MaxZoom != 0 {
		if cam.MinZoom > 0 && cam.MaxZoom > cam.MinZoom {
			c.minZoom, c.maxZoom = cam.MinZoom, cam.MaxZoom
		} else {
			Logger().Warn("ignoring invalid zoom limits",
				slog.Float64("min", cam.MinZoom), slog.Float64("max", cam.MaxZoom))
		}
	}
	if cam.Bounds != nil {
		b := R(cam.Bounds.X, cam.Bounds.Y, cam.Bounds.W, cam.Bounds.H)
		if b.W > 0 && b.H > 0 {
			c.bounds = &b
			c.boundsMode = ParseBoundsMode(cam.BoundsMode)
		} else {
			Logger().Warn("ignoring malformed camera bounds",
				slog.Float64("width", b.W), slog.Float64("height", b.H))
		}
	}

	g := cfg.Grid
	if g.Spacing > 0 {
		c.grid.Spacing = g.Spacing
	}
	if g.MajorEvery > 0 {
		c.grid.MajorEvery = g.MajorEvery
	}
	if g.VisibilityPx > 0 {
		c.grid.VisibilityPx = g.VisibilityPx
	}
	if col := hexToColor(g.Color); col != nil {
		c.grid.Color = toRGBA(col)
	}
	if col := hexToColor(g.Background); col != nil {
		c.grid.Background = toRGBA(col)
	}

	e := cfg.Embed
	if e.Buffer > 0 {
		c.limits.Buffer = e.Buffer
	}
	if e.MaxMultiplier > 0 {
		c.limits.MaxMultiplier = e.MaxMultiplier
	}
	if e.DefaultMaxW > 0 {
		c.limits.DefaultMaxW = e.DefaultMaxW
	}
	if e.DefaultMaxH > 0 {
		c.limits.DefaultMaxH = e.DefaultMaxH
	}

	if cfg.Hit.BodyPx > 0 {
		c.hitTolPx = cfg.Hit.BodyPx
	}
	if cfg.Hit.HandlePx > 0 {
		c.handleTolPx = cfg.Hit.HandlePx
	}
}
