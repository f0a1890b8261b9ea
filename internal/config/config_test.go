package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.MaxSatellites != 30 {
		t.Errorf("MaxSatellites = %d, want 30", cfg.MaxSatellites)
	}
	if cfg.FrameCount != 300 {
		t.Errorf("FrameCount = %d, want 300", cfg.FrameCount)
	}
	if cfg.FrameStride != 2 {
		t.Errorf("FrameStride = %d, want 2", cfg.FrameStride)
	}
	// The start anchor is a fixed instant, not "now".
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", cfg.StartTime, want)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitviz.yaml")
	yaml := `
source_url: http://example.com/elements
max_satellites: 12
duration_days: 0.25
frame_count: 120
frame_stride: 4
reference_frame: earthfixed
output_dir: out
preview:
  enabled: true
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, testLogger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SourceURL != "http://example.com/elements" {
		t.Errorf("SourceURL = %q", cfg.SourceURL)
	}
	if cfg.MaxSatellites != 12 || cfg.FrameCount != 120 || cfg.FrameStride != 4 {
		t.Errorf("counts not loaded: %d %d %d", cfg.MaxSatellites, cfg.FrameCount, cfg.FrameStride)
	}
	if cfg.DurationDays != 0.25 {
		t.Errorf("DurationDays = %g", cfg.DurationDays)
	}
	if cfg.ReferenceFrame != FrameEarthFixed {
		t.Errorf("ReferenceFrame = %q", cfg.ReferenceFrame)
	}
	if !cfg.Preview.Enabled || cfg.Preview.Addr != ":9090" {
		t.Errorf("preview not loaded: %+v", cfg.Preview)
	}
	// Unset fields keep their defaults.
	if cfg.Cache.MaxFiles != 5 {
		t.Errorf("Cache.MaxFiles = %d, want default 5", cfg.Cache.MaxFiles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), testLogger); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ORBITVIZ_MAX_SATELLITES", "7")
	t.Setenv("ORBITVIZ_DURATION_DAYS", "0.5")
	t.Setenv("ORBITVIZ_START_TIME", "2026-03-01T06:00:00Z")
	t.Setenv("ORBITVIZ_OUTPUT_DIR", "elsewhere")

	cfg, err := Load("", testLogger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxSatellites != 7 {
		t.Errorf("MaxSatellites = %d, want 7", cfg.MaxSatellites)
	}
	if cfg.DurationDays != 0.5 {
		t.Errorf("DurationDays = %g, want 0.5", cfg.DurationDays)
	}
	want := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	if !cfg.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", cfg.StartTime, want)
	}
	if cfg.OutputDir != "elsewhere" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestEnvOverrideInvalidValueKeepsDefault(t *testing.T) {
	t.Setenv("ORBITVIZ_MAX_SATELLITES", "not-a-number")
	t.Setenv("ORBITVIZ_FRAME_COUNT", "-4")

	cfg, err := Load("", testLogger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxSatellites != 30 || cfg.FrameCount != 300 {
		t.Errorf("invalid env values overrode defaults: %d %d", cfg.MaxSatellites, cfg.FrameCount)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty source url", func(c *Config) { c.SourceURL = "" }},
		{"zero satellites", func(c *Config) { c.MaxSatellites = 0 }},
		{"negative duration", func(c *Config) { c.DurationDays = -0.1 }},
		{"one frame", func(c *Config) { c.FrameCount = 1 }},
		{"zero stride", func(c *Config) { c.FrameStride = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"unknown frame", func(c *Config) { c.ReferenceFrame = "barycentric" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
