// Package render turns an assembled scene description into the export
// artifacts: static PNG views at named camera angles, a numbered raster
// frame sequence, and one interactive HTML document.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/metrics"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/scene"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timeline"
)

const (
	staticWidth  = 1920
	staticHeight = 1080
	frameWidth   = 1280
	frameHeight  = 720

	htmlFilename = "orbits.html"
	framesSubdir = "frames"
)

// Exporter writes every artifact under one output directory. Writes are
// sequential and idempotent: the same scene produces the same files.
type Exporter struct {
	outDir string
	logger *slog.Logger
}

// NewExporter creates an Exporter rooted at outDir.
func NewExporter(outDir string, logger *slog.Logger) *Exporter {
	return &Exporter{outDir: outDir, logger: logger}
}

// ExportStatics writes static_overview.png from the scene's default camera
// plus one static_<name>_view.png per view, all at 1920x1080.
func (e *Exporter) ExportStatics(desc *scene.Description, views []View) error {
	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	start := time.Now()
	r := NewRenderer(desc)

	cam := desc.Layout.Scene.Camera.Eye
	overview := filepath.Join(e.outDir, "static_overview.png")
	if err := r.RenderPNG(overview, staticWidth, staticHeight, [3]float64{cam.X, cam.Y, cam.Z}, desc.Markers); err != nil {
		return err
	}

	for _, v := range views {
		path := filepath.Join(e.outDir, fmt.Sprintf("static_%s_view.png", v.Name))
		if err := r.RenderPNG(path, staticWidth, staticHeight, v.Eye, desc.Markers); err != nil {
			return err
		}
	}

	metrics.RecordExport("static", time.Since(start))
	e.logger.Info("static views exported", "count", len(views)+1, "dir", e.outDir)
	return nil
}

// ExportFrames writes one 1280x720 PNG per snapshot into the frames
// subdirectory, numbered frame_0000.png onward in snapshot order.
func (e *Exporter) ExportFrames(desc *scene.Description, snapshots []timeline.Snapshot) error {
	framesDir := filepath.Join(e.outDir, framesSubdir)
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return fmt.Errorf("creating frames dir: %w", err)
	}

	start := time.Now()
	r := NewRenderer(desc)
	cam := desc.Layout.Scene.Camera.Eye
	eye := [3]float64{cam.X, cam.Y, cam.Z}

	for i, snap := range snapshots {
		path := filepath.Join(framesDir, fmt.Sprintf("frame_%04d.png", i))
		if err := r.RenderPNG(path, frameWidth, frameHeight, eye, scene.MarkerTraces(snap)); err != nil {
			return err
		}
	}

	metrics.RecordExport("frames", time.Since(start))
	metrics.AddFramesRendered(len(snapshots))
	e.logger.Info("animation frames exported", "count", len(snapshots), "dir", framesDir)
	return nil
}

// ExportHTML writes the interactive document.
func (e *Exporter) ExportHTML(desc *scene.Description) error {
	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	start := time.Now()
	path := filepath.Join(e.outDir, htmlFilename)
	if err := WriteHTML(path, desc); err != nil {
		return err
	}

	metrics.RecordExport("html", time.Since(start))
	e.logger.Info("interactive document exported", "path", path)
	return nil
}
