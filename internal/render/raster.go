package render

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/austinpaluch/satellite-3D-orbit-visualizer/internal/scene"
)

// Renderer rasterizes a scene description from a camera eye using a simple
// perspective projection with sphere occlusion. It is a software stand-in
// for the interactive document's WebGL view, good enough for static
// exports and animation frames.
type Renderer struct {
	desc *scene.Description
}

// NewRenderer creates a Renderer for the given scene.
func NewRenderer(desc *scene.Description) *Renderer {
	return &Renderer{desc: desc}
}

// RenderPNG draws the Earth, every orbit path, and the given marker set
// from the given eye, then writes the result to path. Identical inputs
// produce an identical image.
func (r *Renderer) RenderPNG(path string, width, height int, eye [3]float64, markers []scene.Scatter3D) error {
	cam := newCamera(eye, width, height)
	dc := gg.NewContext(width, height)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r.drawEarth(dc, cam)
	for _, p := range r.desc.Paths {
		r.drawPath(dc, cam, p)
	}
	for _, m := range markers {
		r.drawMarker(dc, cam, m)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// drawEarth fills the sphere silhouette, then strokes the visible half of
// the lat/lon wireframe over it.
func (r *Renderer) drawEarth(dc *gg.Context, cam camera) {
	radius := scene.EarthRadiusKm

	cx, cy, ok := cam.project(vec3{})
	if !ok {
		return
	}
	dist := cam.eye.norm()
	if dist <= radius {
		return
	}
	// Silhouette radius of a sphere under perspective projection.
	rPix := cam.focal * radius / math.Sqrt(dist*dist-radius*radius)

	dc.SetRGBA(0.55, 0.69, 0.87, 0.85)
	dc.DrawCircle(cx, cy, rPix)
	dc.Fill()
	dc.SetRGBA(0.25, 0.41, 0.65, 0.9)
	dc.SetLineWidth(1.5)
	dc.DrawCircle(cx, cy, rPix)
	dc.Stroke()

	mx, my, mz := r.desc.Earth.X, r.desc.Earth.Y, r.desc.Earth.Z
	dc.SetRGBA(0.30, 0.45, 0.68, 0.35)
	dc.SetLineWidth(0.7)

	// Latitude rings.
	for i := range mx {
		r.strokeMeshLine(dc, cam, func(j int) vec3 {
			return vec3{mx[i][j], my[i][j], mz[i][j]}
		}, len(mx[i]))
	}
	// Longitude arcs.
	if len(mx) > 0 {
		for j := range mx[0] {
			r.strokeMeshLine(dc, cam, func(i int) vec3 {
				return vec3{mx[i][j], my[i][j], mz[i][j]}
			}, len(mx))
		}
	}
}

// strokeMeshLine strokes the segments of one mesh polyline whose endpoints
// face the camera.
func (r *Renderer) strokeMeshLine(dc *gg.Context, cam camera, at func(k int) vec3, n int) {
	facing := func(p vec3) bool {
		// Vertex faces the camera when the eye is on its outward side.
		return p.dot(cam.eye) > scene.EarthRadiusKm*scene.EarthRadiusKm*0.999
	}
	for k := 0; k+1 < n; k++ {
		a, b := at(k), at(k+1)
		if !facing(a) || !facing(b) {
			continue
		}
		ax, ay, aok := cam.project(a)
		bx, by, bok := cam.project(b)
		if !aok || !bok {
			continue
		}
		dc.DrawLine(ax, ay, bx, by)
	}
	dc.Stroke()
}

func (r *Renderer) drawPath(dc *gg.Context, cam camera, trace scene.Scatter3D) {
	if trace.Line != nil {
		dc.SetHexColor(trace.Line.Color)
		dc.SetLineWidth(trace.Line.Width / 2)
	} else {
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.SetLineWidth(1)
	}

	for i := 0; i+1 < len(trace.X); i++ {
		a := vec3{trace.X[i], trace.Y[i], trace.Z[i]}
		b := vec3{trace.X[i+1], trace.Y[i+1], trace.Z[i+1]}
		if cam.occludedBySphere(a, scene.EarthRadiusKm) || cam.occludedBySphere(b, scene.EarthRadiusKm) {
			continue
		}
		ax, ay, aok := cam.project(a)
		bx, by, bok := cam.project(b)
		if !aok || !bok {
			continue
		}
		dc.DrawLine(ax, ay, bx, by)
	}
	dc.Stroke()
}

func (r *Renderer) drawMarker(dc *gg.Context, cam camera, trace scene.Scatter3D) {
	if len(trace.X) == 0 {
		return
	}
	p := vec3{trace.X[0], trace.Y[0], trace.Z[0]}
	if cam.occludedBySphere(p, scene.EarthRadiusKm) {
		return
	}
	px, py, ok := cam.project(p)
	if !ok {
		return
	}

	size := 4.0
	if trace.Marker != nil {
		size = trace.Marker.Size / 2
		dc.SetHexColor(trace.Marker.Color)
	} else {
		dc.SetRGB(0.2, 0.2, 0.2)
	}
	dc.DrawCircle(px, py, size)
	dc.Fill()
}
