package propagation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
)

var batchLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// syntheticPropagator returns a trajectory derived from the NORAD ID, and
// fails for IDs listed in failIDs. It stands in for SGP4 in pool tests.
type syntheticPropagator struct {
	failIDs map[int]bool
}

func (p *syntheticPropagator) Positions(rec tle.ElementRecord, grid *timegrid.Grid) (PositionSeries, error) {
	if p.failIDs[rec.NoradID] {
		return PositionSeries{}, fmt.Errorf("synthetic failure for NORAD %d", rec.NoradID)
	}
	series := NewPositionSeries(grid.Len())
	for i := range series.X {
		series.X[i] = float64(rec.NoradID)
		series.Y[i] = float64(i)
		series.Z[i] = float64(rec.NoradID + i)
	}
	return series, nil
}

func syntheticRecords(n int) []tle.ElementRecord {
	records := make([]tle.ElementRecord, n)
	for i := range records {
		records[i] = tle.ElementRecord{NoradID: 1000 + i, Name: fmt.Sprintf("SAT-%d", i)}
	}
	return records
}

func TestBatchPreservesOrder(t *testing.T) {
	grid := testGrid(t, 20)
	records := syntheticRecords(25)

	tracks := Batch(context.Background(), &syntheticPropagator{}, records, grid, 8, batchLogger)

	if len(tracks) != len(records) {
		t.Fatalf("expected %d tracks, got %d", len(records), len(tracks))
	}
	for i, tr := range tracks {
		if tr.Record.NoradID != records[i].NoradID {
			t.Fatalf("track %d has NORAD %d, want %d", i, tr.Record.NoradID, records[i].NoradID)
		}
		if x, _, _ := tr.Series.At(0); x != float64(records[i].NoradID) {
			t.Fatalf("track %d carries another satellite's series", i)
		}
	}
}

func TestBatchDropsFailedSatellites(t *testing.T) {
	grid := testGrid(t, 20)
	records := syntheticRecords(10)

	prop := &syntheticPropagator{failIDs: map[int]bool{1003: true, 1007: true}}
	tracks := Batch(context.Background(), prop, records, grid, 4, batchLogger)

	if len(tracks) != 8 {
		t.Fatalf("expected 8 tracks after 2 failures, got %d", len(tracks))
	}
	for _, tr := range tracks {
		if tr.Record.NoradID == 1003 || tr.Record.NoradID == 1007 {
			t.Errorf("failed satellite %d survived", tr.Record.NoradID)
		}
	}
}

func TestBatchEmptyInput(t *testing.T) {
	grid := testGrid(t, 10)
	if tracks := Batch(context.Background(), &syntheticPropagator{}, nil, grid, 4, batchLogger); tracks != nil {
		t.Errorf("expected nil tracks for empty input, got %d", len(tracks))
	}
}

func TestBatchMoreWorkersThanRecords(t *testing.T) {
	grid := testGrid(t, 10)
	records := syntheticRecords(2)

	tracks := Batch(context.Background(), &syntheticPropagator{}, records, grid, 64, batchLogger)
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
}

func TestBatchDeterministicAcrossRuns(t *testing.T) {
	grid := testGrid(t, 20)
	records := syntheticRecords(12)

	a := Batch(context.Background(), &syntheticPropagator{}, records, grid, 3, batchLogger)
	b := Batch(context.Background(), &syntheticPropagator{}, records, grid, 7, batchLogger)

	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Record.NoradID != b[i].Record.NoradID {
			t.Fatalf("order differs at %d", i)
		}
		for j := 0; j < a[i].Series.Len(); j++ {
			ax, ay, az := a[i].Series.At(j)
			bx, by, bz := b[i].Series.At(j)
			if ax != bx || ay != by || az != bz {
				t.Fatalf("series differ at track %d sample %d", i, j)
			}
		}
	}
}
