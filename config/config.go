// Package config loads optional user configuration for the timeline
// from a YAML file.
package config

import (
	"fmt"
	"os"

	"git.sr.ht/~whereswaldon/chronoline/timeline"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable rendering parameters and the default set
// of event files to open. The zero value means "use the defaults".
type Config struct {
	Files          []string `yaml:"files"`
	DotSizePx      float64  `yaml:"dot_size"`
	LaneHeightPx   float64  `yaml:"lane_height"`
	TextPaddingPx  float64  `yaml:"text_padding"`
	ExtentCapYears int      `yaml:"extent_cap_years"`
}

func Default() Config {
	return Config{
		DotSizePx:      timeline.DefaultDotSizePx,
		LaneHeightPx:   timeline.DefaultLaneHeightPx,
		TextPaddingPx:  timeline.DefaultTextPaddingPx,
		ExtentCapYears: timeline.DefaultExtentCapYears,
	}
}

// Load reads the config at path. An empty path or a missing file is
// not an error; the defaults are returned so the application can run
// without any configuration present.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed parsing config: %w", err)
	}
	return cfg.normalized(), nil
}

// normalized replaces zero or negative values with their defaults, so
// a config that only sets some fields still renders sensibly.
func (c Config) normalized() Config {
	def := Default()
	if c.DotSizePx <= 0 {
		c.DotSizePx = def.DotSizePx
	}
	if c.LaneHeightPx <= 0 {
		c.LaneHeightPx = def.LaneHeightPx
	}
	if c.TextPaddingPx <= 0 {
		c.TextPaddingPx = def.TextPaddingPx
	}
	if c.ExtentCapYears <= 0 {
		c.ExtentCapYears = def.ExtentCapYears
	}
	return c
}

// Projection converts the config into layout parameters.
func (c Config) Projection() timeline.Projection {
	return timeline.Projection{
		DotSizePx:     c.DotSizePx,
		TextPaddingPx: c.TextPaddingPx,
		LaneHeightPx:  c.LaneHeightPx,
	}
}
