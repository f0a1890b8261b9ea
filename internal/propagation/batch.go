package propagation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/metrics"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
)

// Batch propagates every record across the grid using a fixed pool of
// workers. Results land in a slice addressed by input index, so output
// order matches input order regardless of scheduling. A satellite whose
// series fails anywhere is dropped with a warning; the rest proceed.
func Batch(ctx context.Context, prop Propagator, records []tle.ElementRecord, grid *timegrid.Grid, workers int, logger *slog.Logger) []SatelliteTrack {
	if len(records) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) {
		workers = len(records)
	}

	start := time.Now()

	results := make([]*PositionSeries, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				series, err := prop.Positions(records[idx], grid)
				if err != nil {
					logger.Warn("propagation failed, dropping satellite",
						"norad_id", records[idx].NoradID,
						"name", records[idx].Name,
						"error", err,
					)
					continue
				}
				results[idx] = &series
			}
		}()
	}

feed:
	for idx := range records {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	tracks := make([]SatelliteTrack, 0, len(records))
	for idx, series := range results {
		if series == nil {
			continue
		}
		tracks = append(tracks, SatelliteTrack{Record: records[idx], Series: *series})
	}

	duration := time.Since(start)
	metrics.RecordPropagation(duration, len(tracks), len(records)-len(tracks))

	logger.Debug("propagation complete",
		"satellites", len(records),
		"succeeded", len(tracks),
		"dropped", len(records)-len(tracks),
		"grid_points", grid.Len(),
		"workers", workers,
		"duration_ms", duration.Milliseconds(),
	)

	return tracks
}
