// Package timeline slices per-satellite position series into per-instant
// snapshots, the unit of animation.
package timeline

import (
	"fmt"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/propagation"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
)

// Point is one satellite's position (km) inside a snapshot. The name keeps
// the satellite-to-marker association stable for the renderer.
type Point struct {
	Name    string
	NoradID int
	X       float64
	Y       float64
	Z       float64
}

// Snapshot captures every satellite's position at one grid instant.
type Snapshot struct {
	Index  int
	Time   time.Time
	Points []Point
}

// Build samples the tracks at grid indices 0, stride, 2*stride, ... up to
// the last grid index, preserving track order inside each snapshot. Every
// track's series must cover the full grid.
func Build(tracks []propagation.SatelliteTrack, grid *timegrid.Grid, stride int) ([]Snapshot, error) {
	if stride < 1 {
		return nil, fmt.Errorf("stride must be at least 1, got %d", stride)
	}
	for _, tr := range tracks {
		if tr.Series.Len() != grid.Len() {
			return nil, fmt.Errorf("series length %d for NORAD %d does not match grid length %d",
				tr.Series.Len(), tr.Record.NoradID, grid.Len())
		}
	}

	snapshots := make([]Snapshot, 0, (grid.Len()+stride-1)/stride)
	for idx := 0; idx < grid.Len(); idx += stride {
		snapshots = append(snapshots, at(tracks, grid, idx))
	}

	return snapshots, nil
}

// Initial returns the index-0 snapshot used to seed the static markers
// before any animation plays.
func Initial(tracks []propagation.SatelliteTrack, grid *timegrid.Grid) Snapshot {
	return at(tracks, grid, 0)
}

func at(tracks []propagation.SatelliteTrack, grid *timegrid.Grid, idx int) Snapshot {
	points := make([]Point, len(tracks))
	for i, tr := range tracks {
		x, y, z := tr.Series.At(idx)
		points[i] = Point{
			Name:    tr.Record.Name,
			NoradID: tr.Record.NoradID,
			X:       x,
			Y:       y,
			Z:       z,
		}
	}
	return Snapshot{Index: idx, Time: grid.At(idx), Points: points}
}
