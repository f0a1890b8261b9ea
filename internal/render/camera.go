package render

import "math"

// View pairs a name with a camera eye position. Eye coordinates use scene
// units where 1.0 equals the axis half-range (10000 km), matching the
// camera convention of the interactive document.
type View struct {
	Name string
	Eye  [3]float64
}

// DefaultViews are the named static camera angles exported as PNGs.
var DefaultViews = []View{
	{Name: "default", Eye: [3]float64{1.5, 1.5, 1.0}},
	{Name: "top", Eye: [3]float64{0.0, 2.0, 0.0}},
	{Name: "side", Eye: [3]float64{2.0, 0.0, 0.0}},
	{Name: "opposite", Eye: [3]float64{-1.5, -1.5, 1.0}},
}

// eyeScaleKm converts scene-unit eye coordinates to kilometers.
const eyeScaleKm = 10000.0

type vec3 struct {
	X, Y, Z float64
}

func (v vec3) sub(o vec3) vec3    { return vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v vec3) dot(o vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v vec3) norm() float64      { return math.Sqrt(v.dot(v)) }

func (v vec3) cross(o vec3) vec3 {
	return vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v vec3) unit() vec3 {
	n := v.norm()
	if n == 0 {
		return vec3{}
	}
	return vec3{v.X / n, v.Y / n, v.Z / n}
}

// camera performs a perspective projection from an eye position looking at
// the origin.
type camera struct {
	eye     vec3 // km
	right   vec3
	up      vec3
	forward vec3
	focal   float64 // pixels
	cx, cy  float64
}

func newCamera(eye [3]float64, width, height int) camera {
	e := vec3{eye[0] * eyeScaleKm, eye[1] * eyeScaleKm, eye[2] * eyeScaleKm}
	fwd := vec3{-e.X, -e.Y, -e.Z}.unit()

	worldUp := vec3{0, 0, 1}
	if fwd.cross(worldUp).norm() < 1e-9 {
		worldUp = vec3{0, 1, 0}
	}
	right := fwd.cross(worldUp).unit()
	up := right.cross(fwd)

	// Scale the focal length so the axis half-range roughly fills the
	// smaller screen dimension at the origin's depth.
	minDim := float64(width)
	if float64(height) < minDim {
		minDim = float64(height)
	}
	focal := 0.45 * minDim * e.norm() / eyeScaleKm

	return camera{
		eye:     e,
		right:   right,
		up:      up,
		forward: fwd,
		focal:   focal,
		cx:      float64(width) / 2,
		cy:      float64(height) / 2,
	}
}

// project maps a world point (km) to screen pixels. ok is false for points
// at or behind the camera plane.
func (c camera) project(p vec3) (x, y float64, ok bool) {
	d := p.sub(c.eye)
	depth := d.dot(c.forward)
	if depth < 1.0 {
		return 0, 0, false
	}
	x = c.cx + d.dot(c.right)/depth*c.focal
	y = c.cy - d.dot(c.up)/depth*c.focal
	return x, y, true
}

// occludedBySphere reports whether the sphere of the given radius centered
// at the origin blocks the line of sight from the eye to p.
func (c camera) occludedBySphere(p vec3, radius float64) bool {
	dir := p.sub(c.eye)
	dist := dir.norm()
	if dist == 0 {
		return false
	}
	u := vec3{dir.X / dist, dir.Y / dist, dir.Z / dist}

	// Solve |eye + t*u|^2 = radius^2 for t.
	b := c.eye.dot(u)
	disc := b*b - (c.eye.dot(c.eye) - radius*radius)
	if disc < 0 {
		return false
	}
	tHit := -b - math.Sqrt(disc)

	// Occluded when the sphere is hit in front of the eye and before the
	// point (1 km tolerance keeps surface-grazing paths visible).
	return tHit > 0 && tHit < dist-1.0
}
