package propagation

import (
	"fmt"
	"math"
	"strings"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
)

// SGP4 library choice: github.com/joshuaferrara/go-satellite
//
// Pure Go (no CGO), widely adopted, battle-tested since 2016. The library
// propagates at whole-second resolution, so grid instants are truncated to
// seconds at this boundary.
//
// Note: Propagate() takes Satellite by value, so SGP4 error codes set during
// propagation are not visible to the caller. Failures are detected by
// checking the output for NaN/Inf and unreasonable position magnitudes.

// Propagator computes a satellite's position at each grid instant. It is
// the injection point for test doubles with synthetic trajectories.
type Propagator interface {
	Positions(rec tle.ElementRecord, grid *timegrid.Grid) (PositionSeries, error)
}

// SGP4 is the production Propagator backed by go-satellite.
type SGP4 struct{}

// NewSGP4 returns the SGP4-backed Propagator.
func NewSGP4() *SGP4 {
	return &SGP4{}
}

// Positions propagates rec across every instant of the grid. Output is in
// kilometers in the propagator's inertial frame.
func (p *SGP4) Positions(rec tle.ElementRecord, grid *timegrid.Grid) (PositionSeries, error) {
	if err := validateElementLines(rec.Line1, rec.Line2); err != nil {
		return PositionSeries{}, fmt.Errorf("invalid elements for %q (NORAD %d): %w", rec.Name, rec.NoradID, err)
	}

	sat := satellite.TLEToSat(rec.Line1, rec.Line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return PositionSeries{}, fmt.Errorf("sgp4 init failed for NORAD %d: code=%d %s", rec.NoradID, sat.Error, sat.ErrorStr)
	}

	series := NewPositionSeries(grid.Len())
	for i, t := range grid.Times() {
		t = t.UTC()
		pos, _ := satellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
			math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
			return PositionSeries{}, fmt.Errorf("sgp4 propagation failed for NORAD %d at %s: output is NaN/Inf", rec.NoradID, t.Format("2006-01-02T15:04:05Z"))
		}

		// Sanity check: magnitude between ~6200km (just above Earth) and
		// ~50000km (beyond GEO).
		mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
		if mag < 6200.0 || mag > 50000.0 {
			return PositionSeries{}, fmt.Errorf("sgp4 propagation failed for NORAD %d at %s: unreasonable position magnitude %.1f km", rec.NoradID, t.Format("2006-01-02T15:04:05Z"), mag)
		}

		series.X[i] = pos.X
		series.Y[i] = pos.Y
		series.Z[i] = pos.Z
	}

	return series, nil
}

// validateElementLines performs basic format validation on the element
// lines. This prevents passing garbage to go-satellite, which calls
// log.Fatal on parse errors (and would kill the process).
func validateElementLines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}
