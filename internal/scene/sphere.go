package scene

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EarthRadiusKm is the radius of the reference sphere.
const EarthRadiusKm = 6371.0

// SphereMesh returns latRes x lonRes coordinate grids for a sphere of the
// given radius centered at the origin. Rows sweep latitude (0..π), columns
// sweep longitude (0..2π).
func SphereMesh(radius float64, latRes, lonRes int) (x, y, z [][]float64) {
	phi := floats.Span(make([]float64, latRes), 0, math.Pi)
	theta := floats.Span(make([]float64, lonRes), 0, 2*math.Pi)

	x = make([][]float64, latRes)
	y = make([][]float64, latRes)
	z = make([][]float64, latRes)
	for i, p := range phi {
		x[i] = make([]float64, lonRes)
		y[i] = make([]float64, lonRes)
		z[i] = make([]float64, lonRes)
		sinP, cosP := math.Sin(p), math.Cos(p)
		for j, t := range theta {
			x[i][j] = radius * sinP * math.Cos(t)
			y[i][j] = radius * sinP * math.Sin(t)
			z[i][j] = radius * cosP
		}
	}
	return x, y, z
}
