// Package scene assembles the renderable description of the visualization:
// the reference sphere, one path trace per satellite, seed markers, and the
// per-instant animation frames. The types mirror the subset of Plotly trace
// attributes the exporters consume, so the description marshals straight
// into a figure JSON.
package scene

import (
	"strconv"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/propagation"
	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/timeline"
)

// maxDisplayName is the display truncation applied to satellite names.
const maxDisplayName = 20

// axisRangeKm is the fixed plot extent on every axis.
const axisRangeKm = 10000.0

// Surface is a 3D surface trace (the reference sphere).
type Surface struct {
	Type       string      `json:"type"`
	X          [][]float64 `json:"x"`
	Y          [][]float64 `json:"y"`
	Z          [][]float64 `json:"z"`
	Colorscale string      `json:"colorscale"`
	ShowScale  bool        `json:"showscale"`
	Opacity    float64     `json:"opacity"`
	Name       string      `json:"name"`
}

// Scatter3D is a 3D line or marker trace.
type Scatter3D struct {
	Type      string    `json:"type"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Z         []float64 `json:"z"`
	Mode      string    `json:"mode"`
	Line      *Line     `json:"line,omitempty"`
	Marker    *Marker   `json:"marker,omitempty"`
	Name      string    `json:"name"`
	HoverInfo string    `json:"hoverinfo,omitempty"`
}

// Line styles a path trace.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Marker styles a satellite marker.
type Marker struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Frame is one animation step: the replacement marker set for one instant.
type Frame struct {
	Name string      `json:"name"`
	Data []Scatter3D `json:"data"`
}

// Eye is a camera eye position in scene units.
type Eye struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Camera positions the scene camera.
type Camera struct {
	Eye Eye `json:"eye"`
}

// Axis configures one spatial axis.
type Axis struct {
	Title string     `json:"title"`
	Range [2]float64 `json:"range"`
}

// View3D is the spatial part of the layout.
type View3D struct {
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	ZAxis      Axis   `json:"zaxis"`
	AspectMode string `json:"aspectmode"`
	Camera     Camera `json:"camera"`
}

// Button is one animation control button.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// UpdateMenu is a group of control buttons.
type UpdateMenu struct {
	Type       string   `json:"type"`
	Buttons    []Button `json:"buttons"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
}

// Layout is the figure layout.
type Layout struct {
	Title       string       `json:"title"`
	Scene       View3D       `json:"scene"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
}

// Description aggregates everything the exporters need: static geometry,
// one path per satellite, the seed markers, and the animation frames.
type Description struct {
	Earth   Surface
	Paths   []Scatter3D
	Markers []Scatter3D
	Frames  []Frame
	Layout  Layout
}

// Assemble builds the scene from the computed tracks, the initial snapshot,
// and the full animation snapshot sequence. Zero tracks is valid and yields
// an Earth-only scene.
func Assemble(tracks []propagation.SatelliteTrack, initial timeline.Snapshot, snapshots []timeline.Snapshot) *Description {
	ex, ey, ez := SphereMesh(EarthRadiusKm, 30, 60)

	desc := &Description{
		Earth: Surface{
			Type:       "surface",
			X:          ex,
			Y:          ey,
			Z:          ez,
			Colorscale: "Blues",
			ShowScale:  false,
			Opacity:    0.7,
			Name:       "Earth",
		},
		Paths:   make([]Scatter3D, 0, len(tracks)),
		Markers: MarkerTraces(initial),
		Frames:  make([]Frame, 0, len(snapshots)),
		Layout:  defaultLayout(),
	}

	for i, tr := range tracks {
		desc.Paths = append(desc.Paths, Scatter3D{
			Type:      "scatter3d",
			X:         tr.Series.X,
			Y:         tr.Series.Y,
			Z:         tr.Series.Z,
			Mode:      "lines",
			Line:      &Line{Color: Color(i), Width: 3},
			Name:      displayName(tr.Record.Name),
			HoverInfo: "name",
		})
	}

	for _, snap := range snapshots {
		desc.Frames = append(desc.Frames, Frame{
			Name: strconv.Itoa(snap.Index),
			Data: MarkerTraces(snap),
		})
	}

	return desc
}

// MarkerTraces converts one snapshot into its per-satellite marker traces,
// one single-point trace per satellite in snapshot order.
func MarkerTraces(snap timeline.Snapshot) []Scatter3D {
	traces := make([]Scatter3D, len(snap.Points))
	for i, p := range snap.Points {
		traces[i] = Scatter3D{
			Type:   "scatter3d",
			X:      []float64{p.X},
			Y:      []float64{p.Y},
			Z:      []float64{p.Z},
			Mode:   "markers",
			Marker: &Marker{Size: 8, Color: Color(i)},
			Name:   displayName(p.Name),
		}
	}
	return traces
}

func defaultLayout() Layout {
	return Layout{
		Title: "3D Orbit Visualization",
		Scene: View3D{
			XAxis:      Axis{Title: "X (km)", Range: [2]float64{-axisRangeKm, axisRangeKm}},
			YAxis:      Axis{Title: "Y (km)", Range: [2]float64{-axisRangeKm, axisRangeKm}},
			ZAxis:      Axis{Title: "Z (km)", Range: [2]float64{-axisRangeKm, axisRangeKm}},
			AspectMode: "data",
			Camera:     Camera{Eye: Eye{X: 1.5, Y: 1.5, Z: 1.0}},
		},
		UpdateMenus: []UpdateMenu{
			{
				Type: "buttons",
				Buttons: []Button{
					{
						Label:  "Play",
						Method: "animate",
						Args: []any{nil, map[string]any{
							"frame":       map[string]any{"duration": 50, "redraw": true},
							"transition":  map[string]any{"duration": 0},
							"fromcurrent": true,
						}},
					},
					{
						Label:  "Pause",
						Method: "animate",
						Args: []any{[]any{nil}, map[string]any{
							"frame": map[string]any{"duration": 0, "redraw": false},
							"mode":  "immediate",
						}},
					},
				},
				ShowActive: false,
				X:          0.1,
				Y:          1.1,
			},
		},
	}
}

func displayName(name string) string {
	if len(name) > maxDisplayName {
		return name[:maxDisplayName]
	}
	return name
}
