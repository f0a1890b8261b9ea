// Command orbitviz is the one-shot visualization pipeline: fetch element
// data, parse the constellation, propagate positions over the configured
// window, and export static views, animation frames, and the interactive
// document. With preview enabled it then serves the output directory until
// interrupted.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/auth"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/config"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/metrics"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/preview"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/propagation"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/render"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/scene"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timeline"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/transform"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if cfg.Preview.Enabled {
		servePreview(ctx, cfg, logger)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	data, err := loadElementData(ctx, cfg, logger)
	if err != nil {
		return err
	}

	records, err := tle.Parse(bytes.NewReader(data), cfg.MaxSatellites, logger)
	if err != nil {
		return err
	}
	metrics.SetSatelliteCount(len(records))
	logger.Info("parsed element records", "count", len(records), "max", cfg.MaxSatellites)
	if len(records) == 0 {
		logger.Warn("no satellites parsed, exporting an empty scene")
	}

	grid, err := timegrid.New(cfg.StartTime, cfg.DurationDays, cfg.FrameCount)
	if err != nil {
		return err
	}
	logger.Info("time grid built",
		"points", grid.Len(),
		"start", grid.Start().Format(time.RFC3339),
		"end", grid.End().Format(time.RFC3339),
		"step", grid.Step().String(),
	)

	tracks := propagation.Batch(ctx, propagation.NewSGP4(), records, grid, cfg.Workers, logger)
	if err := ctx.Err(); err != nil {
		return err
	}

	if cfg.ReferenceFrame == config.FrameEarthFixed {
		for i := range tracks {
			s := tracks[i].Series
			transform.EarthFixSeries(s.X, s.Y, s.Z, grid.Times())
		}
		logger.Info("positions rotated to earth-fixed frame")
	}

	allSnapshots, err := timeline.Build(tracks, grid, 1)
	if err != nil {
		return err
	}
	exportSnapshots, err := timeline.Build(tracks, grid, cfg.FrameStride)
	if err != nil {
		return err
	}
	initial := timeline.Initial(tracks, grid)

	desc := scene.Assemble(tracks, initial, allSnapshots)

	exp := render.NewExporter(cfg.OutputDir, logger)
	if err := exp.ExportStatics(desc, render.DefaultViews); err != nil {
		return err
	}
	if err := exp.ExportFrames(desc, exportSnapshots); err != nil {
		return err
	}
	if err := exp.ExportHTML(desc); err != nil {
		return err
	}

	logger.Info("pipeline complete",
		"satellites", len(tracks),
		"animation_frames", len(allSnapshots),
		"exported_frames", len(exportSnapshots),
		"output_dir", cfg.OutputDir,
	)
	return nil
}

// loadElementData fetches the raw element text, caching it on success. When
// the fetch fails, the newest cached snapshot is used instead; only both
// failing is fatal.
func loadElementData(ctx context.Context, cfg config.Config, logger *slog.Logger) ([]byte, error) {
	cache := tle.NewCache(cfg.Cache.Dir, cfg.Cache.MaxFiles)
	fetcher := tle.NewFetcher(cfg.SourceURL, logger)

	data, err := fetcher.Fetch(ctx)
	if err == nil {
		if werr := cache.Write(data, time.Now()); werr != nil {
			logger.Warn("failed to cache element data", "error", werr)
		}
		logger.Info("fetched element data", "url", fetcher.SourceURL(), "bytes", len(data))
		return data, nil
	}

	logger.Warn("fetch failed, trying cache", "error", err)
	data, ts, cerr := cache.LoadLatest()
	if cerr != nil {
		logger.Error("no cached element data available", "error", cerr)
		return nil, err
	}
	logger.Info("loaded element data from cache", "cached_at", ts.Format(time.RFC3339), "bytes", len(data))
	return data, nil
}

func servePreview(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	authCfg := auth.Config{
		Enabled: cfg.Preview.AuthToken != "",
		Token:   cfg.Preview.AuthToken,
	}
	srv := preview.NewServer(cfg.Preview.Addr, cfg.OutputDir, logger, authCfg)

	go func() {
		logger.Info("starting preview server", "addr", cfg.Preview.Addr, "dir", cfg.OutputDir, "auth_enabled", authCfg.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("preview server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down preview server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("preview server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("preview server stopped")
}
