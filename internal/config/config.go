// Package config holds the pipeline configuration: the recognized options
// are the element source URL, the satellite cap, the propagation window,
// the frame count and export stride, plus output, cache, and preview
// settings. Values come from defaults, an optional YAML file, then
// ORBITVIZ_* environment overrides, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheConfig controls the raw element snapshot cache.
type CacheConfig struct {
	Dir      string `yaml:"dir"`
	MaxFiles int    `yaml:"max_files"`
}

// PreviewConfig controls the optional asset preview server.
type PreviewConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	AuthToken string `yaml:"auth_token"`
}

// Config is the full pipeline configuration.
type Config struct {
	SourceURL      string        `yaml:"source_url"`
	MaxSatellites  int           `yaml:"max_satellites"`
	DurationDays   float64       `yaml:"duration_days"`
	FrameCount     int           `yaml:"frame_count"`
	FrameStride    int           `yaml:"frame_stride"`
	StartTime      time.Time     `yaml:"start_time"`
	ReferenceFrame string        `yaml:"reference_frame"`
	Workers        int           `yaml:"workers"`
	OutputDir      string        `yaml:"output_dir"`
	Cache          CacheConfig   `yaml:"cache"`
	Preview        PreviewConfig `yaml:"preview"`
}

// Reference frame values.
const (
	FrameInertial   = "inertial"
	FrameEarthFixed = "earthfixed"
)

// Default returns the built-in configuration. The start time is a fixed
// calendar instant, not "now", so repeated runs sample identical grids.
func Default() Config {
	return Config{
		SourceURL:      "https://celestrak.org/NORAD/elements/gp.php?GROUP=starlink&FORMAT=tle",
		MaxSatellites:  30,
		DurationDays:   0.1,
		FrameCount:     300,
		FrameStride:    2,
		StartTime:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		ReferenceFrame: FrameInertial,
		Workers:        runtime.NumCPU(),
		OutputDir:      "assets",
		Cache: CacheConfig{
			Dir:      "/tmp/orbitviz/elements",
			MaxFiles: 5,
		},
		Preview: PreviewConfig{
			Enabled: false,
			Addr:    ":8080",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if non-empty), then environment overrides. The result is validated
// and logged.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg, logger)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Info("pipeline config",
		"source_url", cfg.SourceURL,
		"max_satellites", cfg.MaxSatellites,
		"duration_days", cfg.DurationDays,
		"frame_count", cfg.FrameCount,
		"frame_stride", cfg.FrameStride,
		"start_time", cfg.StartTime.UTC().Format(time.RFC3339),
		"reference_frame", cfg.ReferenceFrame,
		"workers", cfg.Workers,
		"output_dir", cfg.OutputDir,
		"preview_enabled", cfg.Preview.Enabled,
	)

	return cfg, nil
}

// Validate checks the invariants the pipeline relies on.
func (c Config) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source_url must not be empty")
	}
	if c.MaxSatellites < 1 {
		return fmt.Errorf("max_satellites must be positive, got %d", c.MaxSatellites)
	}
	if c.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive, got %g", c.DurationDays)
	}
	if c.FrameCount < 2 {
		return fmt.Errorf("frame_count must be at least 2, got %d", c.FrameCount)
	}
	if c.FrameStride < 1 {
		return fmt.Errorf("frame_stride must be at least 1, got %d", c.FrameStride)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.ReferenceFrame != FrameInertial && c.ReferenceFrame != FrameEarthFixed {
		return fmt.Errorf("reference_frame must be %q or %q, got %q", FrameInertial, FrameEarthFixed, c.ReferenceFrame)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

func applyEnv(cfg *Config, logger *slog.Logger) {
	if v := os.Getenv("ORBITVIZ_SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}
	if v := os.Getenv("ORBITVIZ_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("ORBITVIZ_REFERENCE_FRAME"); v != "" {
		cfg.ReferenceFrame = v
	}

	setInt := func(name string, dst *int) {
		v := os.Getenv(name)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid value, keeping default", "var", name, "value", v, "default", *dst)
			return
		}
		*dst = n
	}
	setInt("ORBITVIZ_MAX_SATELLITES", &cfg.MaxSatellites)
	setInt("ORBITVIZ_FRAME_COUNT", &cfg.FrameCount)
	setInt("ORBITVIZ_FRAME_STRIDE", &cfg.FrameStride)
	setInt("ORBITVIZ_WORKERS", &cfg.Workers)

	if v := os.Getenv("ORBITVIZ_DURATION_DAYS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			logger.Warn("invalid value, keeping default", "var", "ORBITVIZ_DURATION_DAYS", "value", v, "default", cfg.DurationDays)
		} else {
			cfg.DurationDays = f
		}
	}

	if v := os.Getenv("ORBITVIZ_START_TIME"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			logger.Warn("invalid value, keeping default", "var", "ORBITVIZ_START_TIME", "value", v, "default", cfg.StartTime.Format(time.RFC3339))
		} else {
			cfg.StartTime = t.UTC()
		}
	}

	if v := os.Getenv("ORBITVIZ_PREVIEW_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid value, keeping default", "var", "ORBITVIZ_PREVIEW_ENABLED", "value", v)
		} else {
			cfg.Preview.Enabled = b
		}
	}
	if v := os.Getenv("ORBITVIZ_PREVIEW_ADDR"); v != "" {
		cfg.Preview.Addr = v
	}
	if v := os.Getenv("ORBITVIZ_PREVIEW_TOKEN"); v != "" {
		cfg.Preview.AuthToken = v
	}
}
