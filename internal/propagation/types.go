package propagation

import "github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"

// PositionSeries holds one satellite's Cartesian positions in kilometers,
// one entry per time-grid instant. The series is owned by the satellite it
// was computed for and is never mutated after creation.
type PositionSeries struct {
	X []float64
	Y []float64
	Z []float64
}

// NewPositionSeries allocates a series of length n.
func NewPositionSeries(n int) PositionSeries {
	return PositionSeries{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
}

// Len returns the number of sampled instants.
func (s PositionSeries) Len() int {
	return len(s.X)
}

// At returns the position at grid index i.
func (s PositionSeries) At(i int) (x, y, z float64) {
	return s.X[i], s.Y[i], s.Z[i]
}

// SatelliteTrack pairs a parsed element record with the position series
// computed from it.
type SatelliteTrack struct {
	Record tle.ElementRecord
	Series PositionSeries
}
