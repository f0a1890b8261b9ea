// Package timegrid builds the fixed, uniformly spaced sequence of UTC
// instants over which satellite positions are sampled. The grid is anchored
// at a configured calendar instant, never "now", so two runs with the same
// configuration sample identical times.
package timegrid

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Grid is an immutable ordered sequence of uniformly spaced UTC instants.
type Grid struct {
	times []time.Time
}

// New builds a grid of n instants spanning [start, start+durationDays].
// Spacing is uniform by construction. n must be at least 2 and the duration
// positive.
func New(start time.Time, durationDays float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 instants, got %d", n)
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("grid duration must be positive, got %g days", durationDays)
	}

	offsets := floats.Span(make([]float64, n), 0, durationDays)
	times := make([]time.Time, n)
	start = start.UTC()
	for i, d := range offsets {
		times[i] = start.Add(time.Duration(d * float64(24*time.Hour)))
	}

	return &Grid{times: times}, nil
}

// Len returns the number of instants in the grid.
func (g *Grid) Len() int {
	return len(g.times)
}

// At returns the instant at index i.
func (g *Grid) At(i int) time.Time {
	return g.times[i]
}

// Times returns the underlying instants. Callers must treat the slice as
// read-only.
func (g *Grid) Times() []time.Time {
	return g.times
}

// Start returns the first instant.
func (g *Grid) Start() time.Time {
	return g.times[0]
}

// End returns the last instant.
func (g *Grid) End() time.Time {
	return g.times[len(g.times)-1]
}

// Step returns the spacing between adjacent instants.
func (g *Grid) Step() time.Duration {
	return g.times[1].Sub(g.times[0])
}
