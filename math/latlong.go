// math/latlong.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

// EarthRadiusNM is the mean radius of the spherical earth model used for
// all of the great-circle calculations below.
const EarthRadiusNM = 3440.065

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func rad(d float32) float64 { return float64(d) / 180 * gomath.Pi }

func deg(r float64) float32 { return float32(r * 180 / gomath.Pi) }

func sqr64(v float64) float64 { return v * v }

// NMDistance2LL returns the great-circle distance in nautical miles
// between two provided lat-long coordinates, via the haversine formula.
// https://www.movable-type.co.uk/scripts/latlong.html
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	lat1, lon1 := rad(a[1]), rad(a[0])
	lat2, lon2 := rad(b[1]), rad(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := sqr64(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*sqr64(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return float32(EarthRadiusNM * c)
}

// Bearing2LL returns the initial true course in [0,360) for the
// great-circle from a to b.
func Bearing2LL(a Point2LL, b Point2LL) float32 {
	lat1, lon1 := rad(a[1]), rad(a[0])
	lat2, lon2 := rad(b[1]), rad(b[0])
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)

	return NormalizeHeading(deg(gomath.Atan2(y, x)))
}

// IntermediatePoint2LL returns the point at fraction t in [0,1] along the
// great-circle arc from a to b, via standard spherical interpolation;
// t=0 gives a and t=1 gives b.
func IntermediatePoint2LL(a Point2LL, b Point2LL, t float32) Point2LL {
	lat1, lon1 := rad(a[1]), rad(a[0])
	lat2, lon2 := rad(b[1]), rad(b[0])

	d := float64(NMDistance2LL(a, b)) / EarthRadiusNM // angular distance
	if d == 0 {
		return a
	}

	fa := gomath.Sin((1-float64(t))*d) / gomath.Sin(d)
	fb := gomath.Sin(float64(t)*d) / gomath.Sin(d)

	x := fa*gomath.Cos(lat1)*gomath.Cos(lon1) + fb*gomath.Cos(lat2)*gomath.Cos(lon2)
	y := fa*gomath.Cos(lat1)*gomath.Sin(lon1) + fb*gomath.Cos(lat2)*gomath.Sin(lon2)
	z := fa*gomath.Sin(lat1) + fb*gomath.Sin(lat2)

	lat := gomath.Atan2(z, gomath.Sqrt(x*x+y*y))
	lon := gomath.Atan2(y, x)

	return Point2LL{deg(lon), deg(lat)}
}

// CrossTrackDistance2LL returns the perpendicular distance in nautical
// miles from point p to the great-circle through a and b. The result is
// signed: positive if p is to the right of the course from a to b.
func CrossTrackDistance2LL(p Point2LL, a Point2LL, b Point2LL) float32 {
	d13 := float64(NMDistance2LL(a, p)) / EarthRadiusNM
	theta13 := rad(Bearing2LL(a, p))
	theta12 := rad(Bearing2LL(a, b))

	xt := gomath.Asin(gomath.Sin(d13) * gomath.Sin(theta13-theta12))
	return float32(xt * EarthRadiusNM)
}

// AlongTrackDistance2LL returns the signed distance in nautical miles
// from a to the point on the great-circle a->b nearest to p; negative
// values indicate p projects behind a.
func AlongTrackDistance2LL(p Point2LL, a Point2LL, b Point2LL) float32 {
	d13 := float64(NMDistance2LL(a, p)) / EarthRadiusNM
	if d13 == 0 {
		return 0
	}
	xt := float64(CrossTrackDistance2LL(p, a, b)) / EarthRadiusNM

	cosxt := gomath.Cos(xt)
	if cosxt == 0 {
		return 0
	}
	at := gomath.Acos(Clamp(gomath.Cos(d13)/cosxt, -1, 1))

	// Negative if the projection falls behind a.
	if HeadingDifference(Bearing2LL(a, p), Bearing2LL(a, b)) > 90 {
		at = -at
	}
	return float32(at * EarthRadiusNM)
}
