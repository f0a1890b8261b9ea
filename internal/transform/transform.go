// Package transform rotates inertial satellite positions into an
// Earth-fixed frame so the constellation can be drawn over a globe that
// does not spin underneath it.
//
// Method: Z-axis rotation by GMST only (inertial → pseudo-Earth-fixed).
// This ignores polar motion and the equation of equinoxes, which costs
// tens of meters at most — irrelevant at visualization scale.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3.
package transform

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const j2000 = 2451545.0

// JulianDate converts a UTC time.Time to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JulianDate(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Treat Jan/Feb as months 13/14 of the previous year.
	if m <= 2 {
		y -= 1
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}

// GMST calculates Greenwich Mean Sidereal Time in radians for a given UTC
// time, using the IAU-82 model (Vallado Eq 3-47):
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries of UT1 from J2000.0 and the result is in
// seconds of time.
func GMST(t time.Time) float64 {
	jd := JulianDate(t.UTC())
	tUT1 := (jd - j2000) / 36525.0

	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}

	return gmstSec / 86400.0 * 2.0 * math.Pi
}

// EarthFixed rotates an inertial position (km) about the Z axis by the
// given GMST angle (radians). Output stays in km.
func EarthFixed(x, y, z, gmst float64) (float64, float64, float64) {
	cosG := math.Cos(gmst)
	sinG := math.Sin(gmst)
	return x*cosG + y*sinG, -x*sinG + y*cosG, z
}

// EarthFixSeries rotates a whole position series in place, sample by
// sample, using the GMST of each instant. The three slices and times must
// share a length.
func EarthFixSeries(xs, ys, zs []float64, times []time.Time) {
	for i, t := range times {
		xs[i], ys[i], zs[i] = EarthFixed(xs[i], ys[i], zs[i], GMST(t))
	}
}
