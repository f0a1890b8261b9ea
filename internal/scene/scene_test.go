package scene

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/propagation"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timegrid"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timeline"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/tle"
)

func testTracks(t *testing.T, n, gridLen int) ([]propagation.SatelliteTrack, *timegrid.Grid) {
	t.Helper()
	grid, err := timegrid.New(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0.1, gridLen)
	if err != nil {
		t.Fatalf("building grid: %v", err)
	}

	tracks := make([]propagation.SatelliteTrack, n)
	for i := range tracks {
		series := propagation.NewPositionSeries(gridLen)
		for j := range series.X {
			series.X[j] = 7000
			series.Y[j] = float64(j)
			series.Z[j] = float64(i)
		}
		tracks[i] = propagation.SatelliteTrack{
			Record: tle.ElementRecord{NoradID: 100 + i, Name: strings.Repeat("X", i+18)},
			Series: series,
		}
	}
	return tracks, grid
}

func assemble(t *testing.T, n, gridLen, stride int) *Description {
	t.Helper()
	tracks, grid := testTracks(t, n, gridLen)
	snapshots, err := timeline.Build(tracks, grid, stride)
	if err != nil {
		t.Fatalf("building snapshots: %v", err)
	}
	return Assemble(tracks, timeline.Initial(tracks, grid), snapshots)
}

func TestColorCycleIsDeterministic(t *testing.T) {
	if len(Palette) != 10 {
		t.Fatalf("palette size = %d, want 10", len(Palette))
	}
	for i := 0; i < 35; i++ {
		if Color(i) != Palette[i%10] {
			t.Errorf("Color(%d) = %q, want %q", i, Color(i), Palette[i%10])
		}
	}
	if Color(0) != Color(10) || Color(3) != Color(23) {
		t.Error("color cycle does not wrap at the palette size")
	}
}

func TestSphereMesh(t *testing.T) {
	x, y, z := SphereMesh(EarthRadiusKm, 30, 60)

	if len(x) != 30 || len(y) != 30 || len(z) != 30 {
		t.Fatalf("mesh rows = %d, want 30", len(x))
	}
	for i := range x {
		if len(x[i]) != 60 {
			t.Fatalf("mesh row %d has %d columns, want 60", i, len(x[i]))
		}
		for j := range x[i] {
			r := math.Sqrt(x[i][j]*x[i][j] + y[i][j]*y[i][j] + z[i][j]*z[i][j])
			if math.Abs(r-EarthRadiusKm) > 1e-6 {
				t.Fatalf("mesh vertex (%d,%d) radius %.6f, want %.1f", i, j, r, EarthRadiusKm)
			}
		}
	}

	// Poles: first row is the north pole, last row the south pole.
	if math.Abs(z[0][0]-EarthRadiusKm) > 1e-6 || math.Abs(z[29][0]+EarthRadiusKm) > 1e-6 {
		t.Errorf("mesh poles misplaced: z[0][0]=%f z[29][0]=%f", z[0][0], z[29][0])
	}
}

func TestAssembleTraceCounts(t *testing.T) {
	desc := assemble(t, 5, 20, 1)

	if desc.Earth.Type != "surface" {
		t.Errorf("earth trace type = %q, want surface", desc.Earth.Type)
	}
	if len(desc.Paths) != 5 {
		t.Errorf("paths = %d, want 5", len(desc.Paths))
	}
	if len(desc.Markers) != 5 {
		t.Errorf("initial markers = %d, want 5", len(desc.Markers))
	}
	if len(desc.Frames) != 20 {
		t.Errorf("frames = %d, want 20", len(desc.Frames))
	}
	for _, f := range desc.Frames {
		if len(f.Data) != 5 {
			t.Fatalf("frame %q has %d marker traces, want 5", f.Name, len(f.Data))
		}
	}
}

func TestAssembleColorsFollowIndex(t *testing.T) {
	desc := assemble(t, 12, 10, 1)
	for i, p := range desc.Paths {
		if p.Line.Color != Color(i) {
			t.Errorf("path %d color %q, want %q", i, p.Line.Color, Color(i))
		}
	}
	for i, m := range desc.Markers {
		if m.Marker.Color != Color(i) {
			t.Errorf("marker %d color %q, want %q", i, m.Marker.Color, Color(i))
		}
	}
}

func TestAssembleTruncatesLongNames(t *testing.T) {
	// Names are "XXX..." of lengths 18..22; everything above 20 truncates.
	desc := assemble(t, 5, 10, 1)
	for i, p := range desc.Paths {
		wantLen := i + 18
		if wantLen > 20 {
			wantLen = 20
		}
		if len(p.Name) != wantLen {
			t.Errorf("path %d name length %d, want %d", i, len(p.Name), wantLen)
		}
	}
}

func TestAssembleMarkersAreSinglePoints(t *testing.T) {
	desc := assemble(t, 3, 10, 1)
	for i, m := range desc.Markers {
		if len(m.X) != 1 || len(m.Y) != 1 || len(m.Z) != 1 {
			t.Fatalf("marker %d is not a single point", i)
		}
		if m.Mode != "markers" {
			t.Errorf("marker %d mode %q, want markers", i, m.Mode)
		}
	}
	for _, p := range desc.Paths {
		if p.Mode != "lines" {
			t.Errorf("path mode %q, want lines", p.Mode)
		}
		if len(p.X) != 10 {
			t.Errorf("path has %d samples, want 10", len(p.X))
		}
	}
}

func TestAssembleEmptyConstellation(t *testing.T) {
	desc := assemble(t, 0, 10, 2)

	if len(desc.Paths) != 0 || len(desc.Markers) != 0 {
		t.Errorf("empty constellation produced %d paths, %d markers", len(desc.Paths), len(desc.Markers))
	}
	if len(desc.Frames) != 5 {
		t.Errorf("frames = %d, want 5", len(desc.Frames))
	}
	if len(desc.Earth.X) == 0 {
		t.Error("empty constellation lost the Earth surface")
	}
}

func TestLayoutDefaults(t *testing.T) {
	desc := assemble(t, 1, 10, 1)
	l := desc.Layout

	if l.Scene.XAxis.Range != [2]float64{-10000, 10000} {
		t.Errorf("x range = %v", l.Scene.XAxis.Range)
	}
	if l.Scene.AspectMode != "data" {
		t.Errorf("aspect mode = %q, want data", l.Scene.AspectMode)
	}
	if l.Scene.Camera.Eye != (Eye{X: 1.5, Y: 1.5, Z: 1.0}) {
		t.Errorf("camera eye = %+v", l.Scene.Camera.Eye)
	}
	if len(l.UpdateMenus) != 1 || len(l.UpdateMenus[0].Buttons) != 2 {
		t.Fatal("expected one menu with play and pause buttons")
	}
	if l.UpdateMenus[0].Buttons[0].Label != "Play" || l.UpdateMenus[0].Buttons[1].Label != "Pause" {
		t.Errorf("button labels = %q, %q", l.UpdateMenus[0].Buttons[0].Label, l.UpdateMenus[0].Buttons[1].Label)
	}
}
